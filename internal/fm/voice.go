package fm

import "sync"

// Voice binds a shared PatchDefinition to a fundamental frequency and key
// state, producing one float64 sample per call to NextSample. Voices are
// created once (at startup, or once per sequencer channel) and reused;
// they are never destroyed during playback. Voice state is owned
// exclusively by the audio thread during playback; a control/GUI thread
// calling SetActive/SetFrequency/SetPatch synchronizes with it through
// mu, held only for the instant of each call.
type Voice struct {
	mu sync.Mutex

	patch      *PatchDefinition
	operators  [OperatorCount]*OperatorInstance
	active     bool
	sampleRate float64
	baseFreq   float64

	prevFeedback1 float64
	prevFeedback2 float64

	sampleClock uint64

	// scratch avoids a per-sample heap allocation for the operator
	// output array used while resolving the algorithm graph.
	scratch [OperatorCount]float64
}

// NewVoice creates an inactive voice bound to patch, with operator
// instances generated fresh (all envelopes silent, phases at zero).
func NewVoice(patch *PatchDefinition, sampleRate float64) *Voice {
	v := &Voice{patch: patch, sampleRate: sampleRate}
	for i := range v.operators {
		v.operators[i] = NewOperatorInstance()
	}
	return v
}

// Active reports the voice's key state: true between SetActive(true) and
// SetActive(false). It is false during the release tail, while the
// envelopes may still be sounding; release-tail silence is only visible
// through envelope attenuation.
func (v *Voice) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// SetPatch rebinds the voice to a new shared patch definition and
// regenerates its operator instances, used when a sequencer channel
// switches to a different patch.
func (v *Voice) SetPatch(patch *PatchDefinition) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.patch = patch
	for i := range v.operators {
		v.operators[i] = NewOperatorInstance()
	}
	v.prevFeedback1 = 0
	v.prevFeedback2 = 0
}

// SetActive turns the voice's key on or off, triggering the attack or
// release phase of every operator's envelope. No-op if the state already
// matches (idempotent, as KeyOn/KeyOff themselves are).
func (v *Voice) SetActive(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if active == v.active {
		return
	}
	v.active = active
	snap := v.patch.Snapshot()
	for i, op := range v.operators {
		if active {
			op.KeyOn(snap.Operators[i])
		} else {
			op.KeyOff(snap.Operators[i])
		}
	}
}

// SetFrequency writes the voice's fundamental frequency; takes effect on
// the next sample with no cross-fade.
func (v *Voice) SetFrequency(hz float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.baseFreq = hz
}

// Frequency returns the voice's current fundamental frequency.
func (v *Voice) Frequency() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.baseFreq
}

// NextSample evaluates one output sample: reads the patch definition
// under a shared-read lock via Snapshot, routes operator outputs through
// the algorithm graph with operator 0 carrying the self-feedback loop,
// sums the carriers, then ticks every operator's envelope once. Called
// once per sample from the audio thread; the brief lock here is the
// "wrap the voice in a mutex" half of spec.md's ownership model, and
// stays uncontended except for the instant a control thread calls
// SetActive/SetFrequency/SetPatch.
//
// Operator 0's raw output is kept unscaled in scratch[0] (it is also the
// feedback history), while operators 1-3 store their Amplification-scaled
// output; a downstream modulator reads whatever is in the source slot
// as-is. Operator 0's own contribution to the carrier sum is scaled by
// Amplification at the point it is added, so every carrier ends up on
// the same footing before the final division restores unity gain.
func (v *Voice) NextSample() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := v.patch.Snapshot()
	algo := snap.Algorithm.definition()

	// Operator 0 always receives self-feedback as its modulation input.
	feedbackMod := ((v.prevFeedback1 + v.prevFeedback2) / 2) * feedbackMultiplier(snap.Feedback)
	raw0 := v.operators[0].Evaluate(snap.Operators[0], v.baseFreq, feedbackMod, v.sampleRate)
	v.prevFeedback2 = v.prevFeedback1
	v.prevFeedback1 = raw0
	v.scratch[0] = raw0

	var final float64
	if algo.carriers[0] {
		final += raw0 * Amplification
	}

	for i := 1; i < OperatorCount; i++ {
		mod := resolveModulation(algo.modulators[i-1], &v.scratch)
		raw := v.operators[i].Evaluate(snap.Operators[i], v.baseFreq, mod, v.sampleRate)
		scaled := raw * Amplification
		v.scratch[i] = scaled
		if algo.carriers[i] {
			final += scaled
		}
	}
	final /= Amplification

	v.sampleClock++
	for i, op := range v.operators {
		op.Tick(snap.Operators[i])
	}
	return final
}

func resolveModulation(src modulationSource, outputs *[OperatorCount]float64) float64 {
	switch src.kind {
	case modSingle:
		return outputs[src.a]
	case modDouble:
		return outputs[src.a] + outputs[src.b]
	default:
		return 0
	}
}

// SampleClock returns the number of samples this voice has rendered since
// construction; SetPatch does not reset it.
func (v *Voice) SampleClock() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sampleClock
}
