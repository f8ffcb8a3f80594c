package fm

// Algorithm selects one of the 8 fixed operator routing graphs. Operator 0
// always receives the self-feedback modulation source in addition to
// whatever ModulationSource its algorithm slot names (there is none for
// operator 0; it is implicit).
type Algorithm int

const (
	Algorithm0 Algorithm = iota
	Algorithm1
	Algorithm2
	Algorithm3
	Algorithm4
	Algorithm5
	Algorithm6
	Algorithm7
)

// IsValid reports whether a is one of the 8 defined algorithms.
func (a Algorithm) IsValid() bool { return a >= Algorithm0 && a <= Algorithm7 }

// modulationKind distinguishes the three shapes a ModulationSource can take.
type modulationKind int

const (
	modNone modulationKind = iota
	modSingle
	modDouble
)

// modulationSource names which prior operator output(s) feed this operator's
// modulation input, in units of "the output computed earlier in this same
// sample".
type modulationSource struct {
	kind    modulationKind
	a, b    int
}

func modNoneSrc() modulationSource             { return modulationSource{kind: modNone} }
func modSingleSrc(i int) modulationSource      { return modulationSource{kind: modSingle, a: i} }
func modDoubleSrc(i, j int) modulationSource   { return modulationSource{kind: modDouble, a: i, b: j} }

// algorithmDefinition is the fixed graph for one Algorithm value: which
// operators are summed into the final output, and what feeds operators
// 1..3 (operator 0's input is always the feedback path).
type algorithmDefinition struct {
	carriers   [4]bool
	modulators [3]modulationSource // for operators 1, 2, 3
}

// algorithms is the literal table of all 8 routing graphs from the patch
// format this engine's algorithm numbering is modeled on.
var algorithms = [8]algorithmDefinition{
	// 0: 0->1->2->3
	{
		carriers:   [4]bool{false, false, false, true},
		modulators: [3]modulationSource{modSingleSrc(0), modSingleSrc(1), modSingleSrc(2)},
	},
	// 1: (0,1)->2->3
	{
		carriers:   [4]bool{false, false, false, true},
		modulators: [3]modulationSource{modNoneSrc(), modDoubleSrc(0, 1), modSingleSrc(2)},
	},
	// 2: 1->2->3
	{
		carriers:   [4]bool{false, false, false, true},
		modulators: [3]modulationSource{modNoneSrc(), modSingleSrc(1), modSingleSrc(2)},
	},
	// 3: 0->1, (1,2)->3
	{
		carriers:   [4]bool{false, false, false, true},
		modulators: [3]modulationSource{modSingleSrc(0), modNoneSrc(), modDoubleSrc(1, 2)},
	},
	// 4: 0->1 carrier, 3->... ; 1 and 3 are carriers
	{
		carriers:   [4]bool{false, true, false, true},
		modulators: [3]modulationSource{modSingleSrc(0), modNoneSrc(), modSingleSrc(3)},
	},
	// 5: 0 modulates 1,2,3; all are carriers
	{
		carriers:   [4]bool{false, true, true, true},
		modulators: [3]modulationSource{modSingleSrc(0), modSingleSrc(0), modSingleSrc(0)},
	},
	// 6: 0->1; 2,3 independent carriers
	{
		carriers:   [4]bool{false, true, true, true},
		modulators: [3]modulationSource{modSingleSrc(0), modNoneSrc(), modNoneSrc()},
	},
	// 7: all carriers, no modulation
	{
		carriers:   [4]bool{true, true, true, true},
		modulators: [3]modulationSource{modNoneSrc(), modNoneSrc(), modNoneSrc()},
	},
}

func (a Algorithm) definition() algorithmDefinition {
	return algorithms[a]
}
