package fm

import "fmt"

// frequencyRatios is the literal carrier:modulator ratio table for the
// 21 FrequencyMultiplier indices (0..20), taken directly from the
// reference patch format this engine's algorithms were modeled on.
var frequencyRatios = [21]float64{
	1. / 4., // 0  4:1  0.25
	1. / 3., // 1  3:1  ~0.33333
	3. / 8., // 2  8:3  ~0.375
	1. / 2., // 3  2:1  0.5
	2. / 3., // 4  3:2  ~0.666
	3. / 4., // 5  4:3  ~0.75
	1.,      // 6  1:1  1.0
	5. / 4., // 7  4:5  1.25
	4. / 3., // 8  3:4  ~1.33
	3. / 2., // 9  2:3  1.5
	5. / 3., // 10 3:5  ~1.66
	2.,      // 11 1:2  2.0
	5. / 2., // 12 2:5  2.5
	8. / 3., // 13 3:8  ~2.666
	3.,      // 14 1:3  3.0
	10. / 3., // 15 3:10 ~3.333
	4.,      // 16 1:4  4.0
	5.,      // 17 1:5  5.0
	16. / 3., // 18 3:16 ~5.333
	6.,      // 19 1:6  6.0
	20. / 3., // 20 3:20 ~6.666
}

// FrequencyMultiplierRatio returns the human-readable carrier:modulator
// ratio string for a frequency multiplier index, for UI display.
func FrequencyMultiplierRatio(index int) string {
	labels := [21]string{
		"4:1", "3:1", "8:3", "2:1", "3:2", "4:3", "1:1", "4:5", "3:4", "2:3",
		"3:5", "1:2", "2:5", "3:8", "1:3", "3:10", "1:4", "1:5", "3:16", "1:6", "3:20",
	}
	if index < 0 || index > 20 {
		return "?"
	}
	return labels[index]
}

// ApplyFrequencyMultiplier scales a base frequency by the ratio at index.
// index must be in 0..=20; callers validate at the configuration boundary.
func ApplyFrequencyMultiplier(index int, baseFrequency float64) float64 {
	return baseFrequency * frequencyRatios[index]
}

const (
	detuneUpConst   = 0.059463095 // 2^(1/12) - 1
	detuneDownConst = 0.0561257   // 1 - 2^(-1/12)
)

// DetuneMultiplier converts a detune in cents (-100..=+100) to a
// multiplicative frequency scale factor.
func DetuneMultiplier(cents int) float64 {
	d := float64(cents) / 100.0
	if cents >= 0 {
		return 1 + d*detuneUpConst
	}
	return 1 + d*detuneDownConst
}

// OperatorDefinition is the immutable, shared-across-voices configuration
// for one of a patch's four operators.
type OperatorDefinition struct {
	Waveform            Waveform
	FrequencyMultiplier int // 0..=20
	Detune              int // cents, -100..=+100
	PulseDuty           float64
	Envelope            EnvelopeParams
}

// Validate checks the configuration invariants spec.md §7 requires at
// the set boundary: a running voice must never observe an invalid value.
func (d OperatorDefinition) Validate() error {
	if !d.Waveform.IsValid() {
		return fmt.Errorf("fm: invalid waveform tag %d", d.Waveform)
	}
	if d.FrequencyMultiplier < 0 || d.FrequencyMultiplier > 20 {
		return fmt.Errorf("fm: frequency multiplier %d out of range 0..20", d.FrequencyMultiplier)
	}
	if d.Detune < -100 || d.Detune > 100 {
		return fmt.Errorf("fm: detune %d out of range -100..100 cents", d.Detune)
	}
	if d.Waveform == WavePulse && (d.PulseDuty <= 0 || d.PulseDuty >= 1) {
		return fmt.Errorf("fm: pulse duty %.3f out of range (0,1)", d.PulseDuty)
	}
	return nil
}

// DefaultOperatorDefinition returns a silent sine operator at unity
// frequency multiplier, the same baseline the patch constructors start
// from before layering in a specific timbre.
func DefaultOperatorDefinition() OperatorDefinition {
	return OperatorDefinition{
		Waveform:            WaveSine,
		FrequencyMultiplier: 6, // 1:1
		Detune:              0,
		PulseDuty:           0.5,
		Envelope:            EnvelopeParams{SustainLevel: 255},
	}
}

// OperatorInstance is the per-voice, mutable operator state: a phase
// accumulator plus an envelope. It holds no pointer into the shared patch
// definition — every Evaluate/Tick/KeyOn/KeyOff call is handed the
// current definition by value, taken from a single per-sample snapshot
// of the patch (see Voice.NextSample), so a GUI thread can rewrite the
// definition concurrently without the audio thread locking per-operator.
type OperatorInstance struct {
	envelope *EnvelopeState
	phase    uint32
}

// NewOperatorInstance builds a fresh, silent operator instance. Instances
// are regenerated only when a voice's patch definition is replaced
// wholesale (e.g. a sequencer channel switches patches).
func NewOperatorInstance() *OperatorInstance {
	return &OperatorInstance{envelope: NewEnvelopeState()}
}

// Evaluate advances the phase accumulator by one sample at the given
// base frequency and returns waveform(phase+modulation) * envelope gain.
func (o *OperatorInstance) Evaluate(def OperatorDefinition, baseFrequency, modulation, sampleRate float64) float64 {
	freq := ApplyFrequencyMultiplier(def.FrequencyMultiplier, baseFrequency) * DetuneMultiplier(def.Detune)
	o.phase += deltaPhase(freq, sampleRate)
	return def.Waveform.evaluate(phaseToRadians(o.phase), modulation, def.PulseDuty) * o.envelope.Attenuation(def.Envelope)
}

// Tick advances this operator's envelope by one sample.
func (o *OperatorInstance) Tick(def OperatorDefinition) { o.envelope.Tick(def.Envelope) }

// KeyOn/KeyOff forward to the envelope.
func (o *OperatorInstance) KeyOn(def OperatorDefinition)  { o.envelope.KeyOn(def.Envelope) }
func (o *OperatorInstance) KeyOff(def OperatorDefinition) { o.envelope.KeyOff(def.Envelope) }

// CurrentAttenuation exposes the raw envelope counter, mostly for tests.
func (o *OperatorInstance) CurrentAttenuation() int { return o.envelope.CurrentAttenuation() }

// ResetPhase zeros the phase accumulator. Voice.SetPatch does not use it;
// it replaces the operator instances with fresh ones instead.
func (o *OperatorInstance) ResetPhase() { o.phase = 0 }
