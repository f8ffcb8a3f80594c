package sequencer

import (
	"fmt"

	"github.com/rdavenport/fourop/internal/fm"
	"github.com/rdavenport/fourop/internal/notes"
)

// Sequencer drives a fixed bank of MusicChannelCount voice channels from
// one step pattern per channel. It owns its channels' fm.Voice instances
// outright; patches are shared by reference from the bank passed to New
// so the same timbre can be played by multiple patterns, or edited live
// by a GUI, without the sequencer knowing about it.
type Sequencer struct {
	bpm                 float64
	patches             []*fm.PatchDefinition
	patterns            [MusicChannelCount]Pattern
	ticksPerPatternStep uint32

	channels        [MusicChannelCount]*fm.Voice
	boundPatchIndex [MusicChannelCount]int

	clock        uint32
	patternIndex int
}

// New builds a sequencer at the given sample rate and tempo, with
// patterns driving voices built from patches. Every pattern must be the
// same length, and every PatchIndex they reference must be within the
// bank; see validatePatterns.
func New(sampleRate float64, bpm float64, patches []*fm.PatchDefinition, patterns [MusicChannelCount]Pattern) (*Sequencer, error) {
	if err := validatePatterns(patterns, len(patches)); err != nil {
		return nil, err
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("sequencer: patch bank must not be empty")
	}

	s := &Sequencer{
		bpm:                 bpm,
		patches:             patches,
		patterns:            patterns,
		ticksPerPatternStep: ticksPerStep(sampleRate, bpm),
	}
	for i := range s.channels {
		s.channels[i] = fm.NewVoice(patches[0], sampleRate)
		s.boundPatchIndex[i] = 0
	}
	return s, nil
}

// ticksPerStep converts a tempo into the number of audio samples between
// pattern steps, at EntriesPerBeat steps per beat.
func ticksPerStep(sampleRate, bpm float64) uint32 {
	beatsPerSecond := bpm / 60.0
	samplesPerBeat := sampleRate / beatsPerSecond
	return uint32(samplesPerBeat / EntriesPerBeat)
}

// Channels exposes the sequencer's live voices, mostly so a GUI can read
// their frequency or envelope state for display.
func (s *Sequencer) Channels() [MusicChannelCount]*fm.Voice { return s.channels }

// NextSample advances the sequencer's clock by one audio sample, firing
// a pattern step and retriggering channels when the clock rolls over,
// and returns the sum of every channel's voice output for this sample.
func (s *Sequencer) NextSample() float64 {
	s.clock++
	if s.clock >= s.ticksPerPatternStep {
		s.clock = 0
		s.advanceStep()
	}

	var sum float64
	for _, ch := range s.channels {
		sum += ch.NextSample()
	}
	return sum
}

// advanceStep fires one pattern step on every channel. A step only
// rebuilds a channel's voice (SetPatch, which resets phase, envelope and
// feedback history) when its PatchIndex actually changes; re-specifying
// the channel's current patch is a no-op, the same same-patch guard the
// reference sequencer uses, so a Held step carrying a repeated
// PatchIndex doesn't silently reset the voice underneath a held note.
func (s *Sequencer) advanceStep() {
	for ch := 0; ch < MusicChannelCount; ch++ {
		entry := s.patterns[ch].Entries[s.patternIndex]
		voice := s.channels[ch]

		if entry.PatchIndex >= 0 && entry.PatchIndex != s.boundPatchIndex[ch] {
			voice.SetPatch(s.patches[entry.PatchIndex])
			s.boundPatchIndex[ch] = entry.PatchIndex
		}

		switch entry.KeyState.Kind {
		case KeyReleased:
			voice.SetActive(false)
		case KeyPressed:
			voice.SetActive(false)
			voice.SetFrequency(notes.Frequency(entry.KeyState.Note))
			voice.SetActive(true)
		case KeySlide:
			voice.SetFrequency(notes.Frequency(entry.KeyState.Note))
		case KeyHeld:
			// leave the channel exactly as it was
		}
	}

	s.patternIndex++
	if s.patternIndex >= s.patterns[0].Len() {
		s.patternIndex = 0
	}
}

// Process fills dst, an interleaved buffer of channels*frames float32
// samples, calling NextSample once per frame and writing the mixed
// result to every output channel. Allocation-free; safe to call from an
// audio callback.
func (s *Sequencer) Process(dst []float32, channels int) {
	if channels <= 0 {
		return
	}
	frames := len(dst) / channels
	for f := 0; f < frames; f++ {
		sample := float32(s.NextSample())
		base := f * channels
		for c := 0; c < channels; c++ {
			dst[base+c] = sample
		}
	}
}

// BPM returns the sequencer's tempo.
func (s *Sequencer) BPM() float64 { return s.bpm }

// PatternIndex returns the step currently being played, for GUI display.
func (s *Sequencer) PatternIndex() int { return s.patternIndex }
