// Package notes maps MIDI-style note numbers to fundamental frequencies
// and human-readable names, the same root-at-A4 scheme the keyboard
// demo and step sequencer both key off of.
package notes

import (
	"fmt"
	"math"
)

// RootNoteFrequency is A4, note number 69.
const RootNoteFrequency = 440.0

// RootNoteNumber is the MIDI note number of RootNoteFrequency.
const RootNoteNumber = 69

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Frequency returns the fundamental frequency in Hz for a note number on
// the standard twelve-tone equal-tempered scale rooted at A4 = 440Hz.
// Note numbers outside the 0..127 MIDI range are accepted; the formula
// is continuous.
func Frequency(note int) float64 {
	return RootNoteFrequency * math.Pow(2, float64(note-RootNoteNumber)/12)
}

// Name returns the note's letter name and octave, e.g. "A4", "C#5".
// Octave numbering follows the MIDI convention where note 60 is C4.
func Name(note int) string {
	octave := note/12 - 1
	name := names[((note%12)+12)%12]
	return fmt.Sprintf("%s%d", name, octave)
}
