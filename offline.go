package fourop

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/rdavenport/fourop/internal/fm"
	"github.com/rdavenport/fourop/internal/notes"
	"github.com/rdavenport/fourop/internal/sequencer"
)

// RenderPatchSamples renders seconds of a single held note on a bare
// voice bound to patch, the offline equivalent of pressing and holding
// one key on the keyboard instrument. Useful for patch auditioning and
// for producing WAV files without opening an audio device.
func RenderPatchSamples(patch *fm.PatchDefinition, sampleRate int, note int, seconds float64) ([]float32, error) {
	if sampleRate <= 0 {
		return nil, errors.New("fourop: sampleRate must be positive")
	}
	if seconds < 0 {
		return nil, errors.New("fourop: seconds must not be negative")
	}
	v := fm.NewVoice(patch, float64(sampleRate))
	v.SetFrequency(notes.Frequency(note))
	v.SetActive(true)

	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		s := float32(v.NextSample())
		out[f*2] = s
		out[f*2+1] = s
	}
	return out, nil
}

// RenderSequence renders a step sequence driven by patches and patterns
// at bpm, for seconds. The offline counterpart of Sequencer.Process,
// used by tools that bounce a pattern bank to disk instead of playing
// it live.
func RenderSequence(patches []*fm.PatchDefinition, bpm float64, patterns [sequencer.MusicChannelCount]sequencer.Pattern, sampleRate int, seconds float64) ([]float32, error) {
	seq, err := sequencer.New(float64(sampleRate), bpm, patches, patterns)
	if err != nil {
		return nil, err
	}
	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	seq.Process(out, 2)
	return out, nil
}

// EncodeWAVFloat32LE wraps interleaved float32 PCM samples in a minimal
// WAVE container (format tag 3, IEEE float), the same layout used to
// bounce auditioned patches and sequences to disk.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
