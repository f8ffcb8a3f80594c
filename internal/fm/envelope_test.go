package fm

import "testing"

func TestEnvelopeZeroAttackRateFreezes(t *testing.T) {
	p := EnvelopeParams{AttackRate: 0, SustainLevel: 255}
	e := NewEnvelopeState()
	e.KeyOn(p)
	start := e.CurrentAttenuation()
	for i := 0; i < 10000; i++ {
		e.Tick(p)
	}
	if e.CurrentAttenuation() != start {
		t.Errorf("expected attack_rate=0 to park the envelope, start=%d now=%d", start, e.CurrentAttenuation())
	}
}

func TestEnvelopeFullCycle(t *testing.T) {
	p := EnvelopeParams{
		AttackRate:       255,
		DecayAttackRate:  200,
		SustainLevel:     128,
		DecaySustainRate: 50,
		ReleaseRate:      100,
	}
	e := NewEnvelopeState()
	e.KeyOn(p)

	sawAttack, sawDecay := false, false
	for i := 0; i < 20000 && e.phase != phaseSustain; i++ {
		prevPhase := e.phase
		e.Tick(p)
		if prevPhase == phaseAttack && e.phase == phaseDecay {
			sawAttack = true
		}
		if prevPhase == phaseDecay && e.phase == phaseSustain {
			sawDecay = true
		}
	}
	if !sawAttack {
		t.Fatal("envelope never left Attack")
	}
	if !sawDecay {
		t.Fatal("envelope never left Decay")
	}
	if e.phase != phaseSustain {
		t.Fatal("expected envelope to settle in Sustain")
	}
	wantSustainTarget := AttenuationMax - int(p.SustainLevel)
	if e.CurrentAttenuation() != wantSustainTarget {
		t.Errorf("expected decay to land on %d, got %d", wantSustainTarget, e.CurrentAttenuation())
	}
	e.KeyOff(p)
	if e.phase != phaseRelease {
		t.Fatal("expected KeyOff to enter Release")
	}
	last := e.CurrentAttenuation()
	for i := 0; i < 50000; i++ {
		e.Tick(p)
		now := e.CurrentAttenuation()
		if now < last {
			t.Fatalf("release attenuation decreased: %d -> %d", last, now)
		}
		last = now
	}
	if e.CurrentAttenuation() != AttenuationMax {
		t.Errorf("expected release to reach full attenuation, got %d", e.CurrentAttenuation())
	}

	// Release is clamped: further ticks are a no-op at the ceiling.
	for i := 0; i < 100; i++ {
		e.Tick(p)
	}
	if e.CurrentAttenuation() != AttenuationMax {
		t.Error("expected attenuation to stay clamped at AttenuationMax")
	}
}

func TestEnvelopeAttenuationMonotoneInTotalLevel(t *testing.T) {
	e := NewEnvelopeState()
	e.currentAttenuation = 0 // fully open ADSR gain
	loud := e.Attenuation(EnvelopeParams{TotalLevel: 255})
	quiet := e.Attenuation(EnvelopeParams{TotalLevel: 0})
	if !(loud > quiet) {
		t.Errorf("expected lower total_level to attenuate more: loud=%v quiet=%v", loud, quiet)
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	e := NewEnvelopeState()
	if got := e.Attenuation(EnvelopeParams{TotalLevel: 0}); got > 0.001 {
		t.Errorf("expected a fresh envelope to be near-silent, got %v", got)
	}
}
