// Package sequencer drives a fixed bank of fm.Voice channels from a set
// of step patterns, the same role the reference patch format's own
// pattern player fills: a patch bank, one pattern per channel, and a
// clock that fires a pattern step at a fixed number of audio samples.
package sequencer

import "fmt"

// MusicChannelCount is the number of independently sequenced voice
// channels a Sequencer drives.
const MusicChannelCount = 8

// EntriesPerBeat is the pattern resolution: how many pattern steps make
// up one beat at the sequence's BPM.
const EntriesPerBeat = 2

// KeyStateKind distinguishes the four things a pattern step can tell its
// channel to do.
type KeyStateKind int

const (
	// KeyReleased silences the channel.
	KeyReleased KeyStateKind = iota
	// KeyHeld leaves the channel exactly as it was on the previous step.
	KeyHeld
	// KeyPressed retriggers the channel's envelope at Note.
	KeyPressed
	// KeySlide changes the channel's frequency to Note without retriggering
	// the envelope, for a glide/legato effect.
	KeySlide
)

// KeyState is one pattern step's instruction to its channel.
type KeyState struct {
	Kind KeyStateKind
	Note int // MIDI-style note number, meaningful for Pressed and Slide
}

// Released, Held are the two KeyStates that carry no note number.
var (
	Released = KeyState{Kind: KeyReleased}
	Held     = KeyState{Kind: KeyHeld}
)

// Pressed builds a KeyState that retriggers the envelope at note.
func Pressed(note int) KeyState { return KeyState{Kind: KeyPressed, Note: note} }

// Slide builds a KeyState that glides to note without retriggering.
func Slide(note int) KeyState { return KeyState{Kind: KeySlide, Note: note} }

// PatternEntry is one step of one channel's pattern: which patch (by
// index into the sequencer's patch bank) the channel should be playing,
// and what to do with the key this step. PatchIndex is -1 when the step
// doesn't change the channel's patch (equivalent to the reference
// format's absent patch index).
type PatternEntry struct {
	PatchIndex int
	KeyState   KeyState
}

// Pattern is one channel's sequence of steps, all patterns in a
// Sequencer share the same length.
type Pattern struct {
	Entries []PatternEntry
}

// NewPattern builds a pattern of length steps, each released and with no
// patch assigned.
func NewPattern(length int) Pattern {
	entries := make([]PatternEntry, length)
	for i := range entries {
		entries[i] = PatternEntry{PatchIndex: -1, KeyState: Released}
	}
	return Pattern{Entries: entries}
}

// Len returns the pattern's step count.
func (p Pattern) Len() int { return len(p.Entries) }

// validatePatterns checks that every pattern is the same length and that
// every PatchIndex referenced is in range for a bank of patchCount
// patches.
func validatePatterns(patterns [MusicChannelCount]Pattern, patchCount int) error {
	length := patterns[0].Len()
	for ch, p := range patterns {
		if p.Len() != length {
			return fmt.Errorf("sequencer: channel %d pattern length %d does not match channel 0's length %d", ch, p.Len(), length)
		}
		for step, entry := range p.Entries {
			if entry.PatchIndex >= patchCount {
				return fmt.Errorf("sequencer: channel %d step %d references patch %d, bank only has %d", ch, step, entry.PatchIndex, patchCount)
			}
		}
	}
	return nil
}
