package fm

import "testing"

func TestVoiceGeneratesSignalWhenActive(t *testing.T) {
	patch := NewPatchDefinition()
	v := NewVoice(patch, 48000)
	v.SetFrequency(220)
	v.SetActive(true)

	var nonZero bool
	for i := 0; i < 5000; i++ {
		if v.NextSample() != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatal("expected an active voice to produce non-zero output")
	}
}

func TestVoiceIsSilentBeforeKeyOn(t *testing.T) {
	patch := NewPatchDefinition()
	v := NewVoice(patch, 48000)
	v.SetFrequency(220)
	// An envelope parked at AttenuationMax still scales its operator by
	// attenuation1025[AttenuationMax]*attenuation256[255-TotalLevel],
	// about 2.7e-10 for the default operators.
	for i := 0; i < 100; i++ {
		if absDiff(v.NextSample(), 0) > 1e-9 {
			t.Fatal("expected an inactive voice to stay silent")
		}
	}
}

func TestVoiceSetActiveIsIdempotent(t *testing.T) {
	patch := NewPatchDefinition()
	v := NewVoice(patch, 48000)
	v.SetActive(true)
	first := v.Active()
	v.SetActive(true)
	if v.Active() != first {
		t.Fatal("expected a repeated SetActive(true) to be a no-op")
	}
}

func TestVoiceFeedbackZeroMeansNoSelfModulation(t *testing.T) {
	patch := NewPatchDefinition()
	if err := patch.SetAlgorithm(Algorithm7); err != nil {
		t.Fatalf("SetAlgorithm: %v", err)
	}
	if err := patch.SetFeedback(0); err != nil {
		t.Fatalf("SetFeedback: %v", err)
	}
	op := DefaultOperatorDefinition()
	op.Envelope = EnvelopeParams{SustainLevel: 255, AttackRate: 255}
	for i := 0; i < OperatorCount; i++ {
		if err := patch.SetOperator(i, op); err != nil {
			t.Fatalf("SetOperator: %v", err)
		}
	}

	feedback := NewVoice(patch, 48000)
	feedback.SetFrequency(440)
	feedback.SetActive(true)
	// With no feedback and no routing, each of the four carriers is a bare
	// operator with a zero modulation input.
	plain := NewOperatorInstance()
	plain.KeyOn(op)

	for i := 0; i < 64; i++ {
		a := feedback.NextSample()
		b := 4 * plain.Evaluate(op, 440, 0, 48000)
		plain.Tick(op)
		if absDiff(a, b) > 1e-9 {
			t.Fatalf("expected feedback level 0 to match four unmodulated operators sample-for-sample, sample %d: %v vs %v", i, a, b)
		}
	}
}

func TestVoiceFeedbackStaysBounded(t *testing.T) {
	patch := NewPatchDefinition()
	if err := patch.SetFeedback(15); err != nil {
		t.Fatalf("SetFeedback: %v", err)
	}
	op := DefaultOperatorDefinition()
	op.Envelope = EnvelopeParams{SustainLevel: 255, AttackRate: 255}
	for i := 0; i < OperatorCount; i++ {
		if err := patch.SetOperator(i, op); err != nil {
			t.Fatalf("SetOperator: %v", err)
		}
	}
	v := NewVoice(patch, 48000)
	v.SetFrequency(440)
	v.SetActive(true)
	for i := 0; i < 20000; i++ {
		s := v.NextSample()
		if s != s { // NaN check
			t.Fatalf("feedback produced NaN at sample %d", i)
		}
		if s > 100 || s < -100 {
			t.Fatalf("feedback produced an unbounded sample %v at %d", s, i)
		}
	}
}

func TestVoiceSetPatchResetsOperatorState(t *testing.T) {
	a := NewPatchDefinition()
	b := NewPatchDefinition()
	v := NewVoice(a, 48000)
	v.SetFrequency(220)
	v.SetActive(true)
	for i := 0; i < 200; i++ {
		v.NextSample()
	}
	v.SetPatch(b)
	for i, op := range v.operators {
		if op.phase != 0 {
			t.Errorf("operator %d: expected SetPatch to regenerate the operator with a zero phase, got %d", i, op.phase)
		}
	}
	if v.SampleClock() == 0 {
		t.Fatal("SampleClock should not reset on SetPatch")
	}
}
