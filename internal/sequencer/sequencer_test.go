package sequencer

import (
	"math"
	"testing"

	"github.com/rdavenport/fourop/internal/fm"
)

func bellPatch() *fm.PatchDefinition {
	p := fm.NewPatchDefinition()
	op := fm.DefaultOperatorDefinition()
	op.Envelope = fm.EnvelopeParams{SustainLevel: 255, AttackRate: 255}
	for i := 0; i < fm.OperatorCount; i++ {
		p.SetOperator(i, op)
	}
	return p
}

func TestNewRejectsMismatchedPatternLengths(t *testing.T) {
	patches := []*fm.PatchDefinition{bellPatch()}
	var patterns [MusicChannelCount]Pattern
	patterns[0] = NewPattern(8)
	patterns[1] = NewPattern(4)
	for i := 2; i < MusicChannelCount; i++ {
		patterns[i] = NewPattern(8)
	}
	if _, err := New(48000, 120, patches, patterns); err == nil {
		t.Error("expected mismatched pattern lengths to be rejected")
	}
}

func TestNewRejectsOutOfRangePatchIndex(t *testing.T) {
	patches := []*fm.PatchDefinition{bellPatch()}
	var patterns [MusicChannelCount]Pattern
	for i := range patterns {
		patterns[i] = NewPattern(4)
	}
	patterns[0].Entries[0].PatchIndex = 5
	if _, err := New(48000, 120, patches, patterns); err == nil {
		t.Error("expected an out-of-range patch index to be rejected")
	}
}

func TestSequencerAdvancesAndPlaysNotes(t *testing.T) {
	patches := []*fm.PatchDefinition{bellPatch()}
	patterns := DemoPattern()
	s, err := New(48000, 960, patches, patterns) // fast tempo for a short test
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var sawNonZero bool
	total := int(s.ticksPerPatternStep) * patterns[0].Len()
	for i := 0; i < total; i++ {
		if s.NextSample() != 0 {
			sawNonZero = true
		}
	}
	if !sawNonZero {
		t.Error("expected a full pass over the demo pattern to produce sound")
	}
}

func TestSequencerPatternIndexWraps(t *testing.T) {
	patches := []*fm.PatchDefinition{bellPatch()}
	var patterns [MusicChannelCount]Pattern
	for i := range patterns {
		patterns[i] = NewPattern(2)
	}
	s, err := New(48000, 6000, patches, patterns) // very fast: 240 samples per step
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < int(s.ticksPerPatternStep)*5; i++ {
		s.NextSample()
	}
	if s.PatternIndex() < 0 || s.PatternIndex() >= 2 {
		t.Errorf("expected pattern index to stay in range, got %d", s.PatternIndex())
	}
}

func TestSequencerHeldStepWithRepeatedPatchIndexDoesNotResetVoice(t *testing.T) {
	patches := []*fm.PatchDefinition{fm.NewPatchDefinition(), bellPatch()}
	lead := Pattern{Entries: []PatternEntry{
		{PatchIndex: 1, KeyState: Pressed(60)},
		{PatchIndex: 1, KeyState: Held},
	}}
	var patterns [MusicChannelCount]Pattern
	patterns[0] = lead
	for ch := 1; ch < MusicChannelCount; ch++ {
		patterns[ch] = NewPattern(lead.Len())
	}

	// 500 samples per pattern step: the Pressed step fires on sample 500
	// and the Held step, repeating PatchIndex 1, on sample 1000.
	s, err := New(48000, 2880, patches, patterns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	step := int(s.ticksPerPatternStep)
	var preStep float64
	for i := 0; i < 2*step-1; i++ {
		v := math.Abs(s.NextSample())
		if i >= 2*step-101 {
			preStep = math.Max(preStep, v)
		}
	}
	if preStep == 0 {
		t.Fatal("expected the held note to be audible just before the Held step")
	}

	// A rebuilt voice restarts from a parked, near-silent envelope.
	var postStep float64
	for i := 0; i < 100; i++ {
		postStep = math.Max(postStep, math.Abs(s.NextSample()))
	}
	if postStep < preStep/2 {
		t.Error("Held step with a repeated PatchIndex reset the voice instead of leaving it alone")
	}
}

func TestSequencerProcessFillsInterleavedBuffer(t *testing.T) {
	patches := []*fm.PatchDefinition{bellPatch()}
	patterns := DemoPattern()
	s, err := New(48000, 960, patches, patterns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const channels = 2
	dst := make([]float32, 512*channels)
	s.Process(dst, channels)
	for f := 0; f < 512; f++ {
		if dst[f*channels] != dst[f*channels+1] {
			t.Fatalf("frame %d: expected identical channels", f)
		}
	}
}
