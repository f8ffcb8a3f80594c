package fm

import "testing"

func TestAlgorithmIsValid(t *testing.T) {
	if !Algorithm0.IsValid() || !Algorithm7.IsValid() {
		t.Error("expected boundary algorithms to be valid")
	}
	if Algorithm(-1).IsValid() || Algorithm(8).IsValid() {
		t.Error("expected out-of-range algorithms to be invalid")
	}
}

func TestAlgorithmTableCarrierCounts(t *testing.T) {
	wantCarriers := [8]int{1, 1, 1, 1, 2, 3, 3, 4}
	for a := Algorithm0; a <= Algorithm7; a++ {
		def := a.definition()
		n := 0
		for _, c := range def.carriers {
			if c {
				n++
			}
		}
		if n != wantCarriers[a] {
			t.Errorf("algorithm %d: expected %d carriers, got %d", a, wantCarriers[a], n)
		}
	}
}

func TestAlgorithm7AllParallelQuadrupleOutput(t *testing.T) {
	patch := NewPatchDefinition()
	if err := patch.SetAlgorithm(Algorithm7); err != nil {
		t.Fatalf("SetAlgorithm: %v", err)
	}
	if err := patch.SetFeedback(0); err != nil {
		t.Fatalf("SetFeedback: %v", err)
	}
	op := DefaultOperatorDefinition()
	op.Envelope = EnvelopeParams{TotalLevel: 255, SustainLevel: 255, AttackRate: 255}
	for i := 0; i < OperatorCount; i++ {
		if err := patch.SetOperator(i, op); err != nil {
			t.Fatalf("SetOperator(%d): %v", i, err)
		}
	}

	single := NewPatchDefinition()
	if err := single.SetFeedback(0); err != nil {
		t.Fatalf("SetFeedback: %v", err)
	}
	// Algorithm1 carries only operator 3; zero out 0,1,2 so only one
	// operator contributes, matching a single bare carrier.
	for i := 0; i < OperatorCount; i++ {
		o := op
		if i != 3 {
			o.Envelope = EnvelopeParams{
				AttackRate:       255,
				DecayAttackRate:  255,
				SustainLevel:     0,
				DecaySustainRate: 255,
			}
		}
		if err := single.SetOperator(i, o); err != nil {
			t.Fatalf("SetOperator(%d): %v", i, err)
		}
	}

	quad := NewVoice(patch, 48000)
	solo := NewVoice(single, 48000)
	quad.SetFrequency(440)
	solo.SetFrequency(440)
	quad.SetActive(true)
	solo.SetActive(true)

	for i := 0; i < 64; i++ {
		quad.NextSample()
	}
	for i := 0; i < 1500; i++ {
		solo.NextSample()
	}

	var quadMax, soloMax float64
	for i := 0; i < 2000; i++ {
		if v := quad.NextSample(); v > quadMax {
			quadMax = v
		}
		if v := solo.NextSample(); v > soloMax {
			soloMax = v
		}
	}
	if soloMax < 0.01 {
		t.Fatalf("solo carrier produced no meaningful output: %v", soloMax)
	}
	ratio := quadMax / soloMax
	if ratio < 3.5 || ratio > 4.5 {
		t.Errorf("expected algorithm 7 to sum to ~4x a single carrier, got ratio %v (quad=%v solo=%v)", ratio, quadMax, soloMax)
	}
}
