// Package fourop is a 4-operator FM synthesizer: lookup-table waveforms,
// an ADSR envelope per operator, 8 fixed routing algorithms, and a fixed
// bank of voices driven either directly (one voice per key, for a
// keyboard instrument) or by a step sequencer.
package fourop

import (
	"errors"
	"sync"

	intaudio "github.com/rdavenport/fourop/internal/audio"
	"github.com/rdavenport/fourop/internal/fm"
	"github.com/rdavenport/fourop/internal/notes"
)

// Player is a keyboard-style instrument: a fixed array of voices, one
// per playable key, all sharing a single live-editable patch. There is
// no dynamic voice allocation or stealing — pressing a key always
// retriggers that key's own voice, matching a one-key-one-voice
// keyboard instrument rather than a polyphonic note pool.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	patch      *fm.PatchDefinition
	voices     []*fm.Voice
	mixer      *fm.Mixer
	audio      *intaudio.Player
	sampleTap  func([]float32)
}

// PlayerOption configures a Player at construction.
type PlayerOption func(*playerConfig)

type playerConfig struct {
	voiceCount int
	sampleTap  func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{voiceCount: 9} // nine keyboard voices
}

// WithVoiceCount sets the fixed number of keyboard voices. Default 9.
func WithVoiceCount(n int) PlayerOption {
	return func(cfg *playerConfig) { cfg.voiceCount = n }
}

// WithSampleTap installs a callback invoked with each generated
// interleaved buffer, for an oscilloscope or level meter. Runs on the
// audio thread; must not allocate or block.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) { cfg.sampleTap = tap }
}

// NewPlayer builds a keyboard instrument at sampleRate with a fresh
// default patch shared by every voice.
func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("fourop: sampleRate must be positive")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.voiceCount <= 0 {
		return nil, errors.New("fourop: voice count must be positive")
	}

	patch := fm.NewPatchDefinition()
	voices := make([]*fm.Voice, cfg.voiceCount)
	for i := range voices {
		voices[i] = fm.NewVoice(patch, float64(sampleRate))
	}

	return &Player{
		sampleRate: sampleRate,
		patch:      patch,
		voices:     voices,
		mixer:      fm.NewMixer(voices),
		sampleTap:  cfg.sampleTap,
	}, nil
}

// Patch returns the live patch definition shared by every voice. Callers
// edit it through its Set* methods; the audio thread observes changes on
// the next sample with no locking beyond the patch's own.
func (p *Player) Patch() *fm.PatchDefinition { return p.patch }

// VoiceCount returns the fixed number of keyboard voices.
func (p *Player) VoiceCount() int { return len(p.voices) }

// NoteOn retriggers voice index's envelope at the given MIDI-style note
// number. index must be within 0..VoiceCount()-1.
func (p *Player) NoteOn(index int, note int) error {
	if index < 0 || index >= len(p.voices) {
		return errors.New("fourop: voice index out of range")
	}
	v := p.voices[index]
	v.SetActive(false)
	v.SetFrequency(notes.Frequency(note))
	v.SetActive(true)
	return nil
}

// NoteOff releases voice index's envelope into its release phase.
func (p *Player) NoteOff(index int) error {
	if index < 0 || index >= len(p.voices) {
		return errors.New("fourop: voice index out of range")
	}
	p.voices[index].SetActive(false)
	return nil
}

// Scope returns the last n mixed output samples, for an oscilloscope.
func (p *Player) Scope(n int) []float32 { return p.mixer.ScopeSnapshot(n) }

// playerSource adapts a Player's mixer to the audio backend's pull
// interface, always rendering stereo (both channels identical).
type playerSource struct {
	player *Player
}

func (s *playerSource) Process(dst []float32) {
	s.player.mixer.Process(dst, 2)
	if tap := s.player.sampleTap; tap != nil {
		tap(dst)
	}
}

// Start opens the realtime audio backend and begins pulling samples from
// the mixer. Safe to call once; call Stop before calling Start again.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		return errors.New("fourop: already started")
	}
	backend, err := intaudio.NewPlayer(p.sampleRate, &playerSource{player: p})
	if err != nil {
		return err
	}
	p.audio = backend
	p.audio.Play()
	return nil
}

// Stop closes the audio backend, if open.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio == nil {
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	return err
}
