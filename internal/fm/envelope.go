package fm

// EnvelopeParams are the six 8-bit fields a patch author sets per operator.
// All fields are interpreted as-is (0..255); TotalLevel is a static
// output level applied on top of the ADSR output: 255 leaves it at full
// level and lower values attenuate it, 0 to near silence. Values are copied by
// value into the audio path each sample (see PatchDefinition.Snapshot),
// so a GUI thread may rewrite them at any time without locking the
// envelope itself.
type EnvelopeParams struct {
	TotalLevel       uint8
	AttackRate       uint8
	DecayAttackRate  uint8 // D1
	SustainLevel     uint8
	DecaySustainRate uint8 // D2
	ReleaseRate      uint8 // RR
}

// envelopePhase is the ADSR state machine's current phase.
type envelopePhase int

const (
	phaseAttack envelopePhase = iota
	phaseDecay
	phaseSustain
	phaseRelease
)

// slowestShift is the cycles_per_tick shift at the slowest nonzero rate;
// a rate16 of 510 (rate byte 255) produces a shift of 0, i.e. advance
// every sample.
const slowestShift = 11

// highestRate16 is rate16's maximum value (255 * 2).
const highestRate16 = 255 * 2

// EnvelopeState is the per-voice-operator ADSR instance: a phase, a clock,
// and the derived cadence. It holds no reference to the shared
// EnvelopeParams — every method takes the current params by value, so a
// patch definition can be edited live without the audio thread holding
// any lock beyond the patch-wide snapshot read.
type EnvelopeState struct {
	currentAttenuation int
	phase              envelopePhase
	clock              uint32
	cyclesPerTick      uint32
	rate               uint16
}

// NewEnvelopeState creates a state that starts silent and parked in
// Release, mirroring a freshly constructed, inactive voice.
func NewEnvelopeState() *EnvelopeState {
	return &EnvelopeState{
		currentAttenuation: AttenuationMax,
		phase:              phaseRelease,
	}
}

// KeyOn starts (or restarts) the Attack phase without resetting
// current_attenuation: re-entering Attack while already attacking just
// continues from wherever the envelope currently sits.
func (e *EnvelopeState) KeyOn(p EnvelopeParams) {
	e.phase = phaseAttack
	e.rate = rate16(p.AttackRate)
	e.reloadCyclesPerTick()
}

// KeyOff moves the envelope into Release, reloading the release rate.
func (e *EnvelopeState) KeyOff(p EnvelopeParams) {
	e.phase = phaseRelease
	e.rate = rate16(p.ReleaseRate)
	e.reloadCyclesPerTick()
}

func rate16(r uint8) uint16 {
	return uint16(r) * 2
}

// reloadCyclesPerTick derives the number of audio samples between unit
// attenuation changes from the active rate: a monotone power-of-two
// shift map where rate=0 parks the envelope (never advances) and the
// maximum rate advances on every sample.
func (e *EnvelopeState) reloadCyclesPerTick() {
	if e.rate == 0 {
		e.cyclesPerTick = 0
		return
	}
	scale := uint32(e.rate) / (highestRate16 / slowestShift)
	shift := slowestShift - scale
	if shift > 31 {
		shift = 31
	}
	e.cyclesPerTick = 1 << shift
}

// Tick advances the envelope by one audio sample, given the current
// (possibly just-edited) envelope parameters.
func (e *EnvelopeState) Tick(p EnvelopeParams) {
	if e.cyclesPerTick == 0 {
		// rate == 0 for the active phase: frozen in place.
		return
	}
	e.clock++
	if e.clock < e.cyclesPerTick {
		return
	}
	e.clock -= e.cyclesPerTick

	switch e.phase {
	case phaseAttack:
		e.currentAttenuation -= e.currentAttenuation/16 + 1
		if e.currentAttenuation <= 0 {
			e.currentAttenuation = 0
			e.phase = phaseDecay
			e.rate = rate16(p.DecayAttackRate)
			e.reloadCyclesPerTick()
		}
	case phaseDecay:
		target := AttenuationMax - int(p.SustainLevel)
		e.currentAttenuation++
		if e.currentAttenuation >= target {
			e.currentAttenuation = target
			e.phase = phaseSustain
			e.rate = rate16(p.DecaySustainRate)
			e.reloadCyclesPerTick()
		}
	case phaseSustain, phaseRelease:
		if e.currentAttenuation >= AttenuationMax {
			e.currentAttenuation = AttenuationMax
			return
		}
		e.currentAttenuation++
	}
}

// Attenuation returns the linear gain factor [0,1] this envelope applies
// to its operator's waveform output at the current instant.
func (e *EnvelopeState) Attenuation(p EnvelopeParams) float64 {
	return attenuation1025[e.currentAttenuation] * attenuation256[255-p.TotalLevel]
}

// CurrentAttenuation exposes the raw attenuation counter, mostly for tests.
func (e *EnvelopeState) CurrentAttenuation() int {
	return e.currentAttenuation
}
