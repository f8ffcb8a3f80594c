// Command seqplay plays the built-in demo step pattern through the
// default audio device, or bounces it to a WAV file with -out.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	fourop "github.com/rdavenport/fourop"
	intaudio "github.com/rdavenport/fourop/internal/audio"
	"github.com/rdavenport/fourop/internal/fm"
	"github.com/rdavenport/fourop/internal/sequencer"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		bpm        = flag.Float64("bpm", 120, "tempo in beats per minute")
		seconds    = flag.Float64("seconds", 8, "length to render when -out is set")
		outPath    = flag.String("out", "", "bounce to this WAV file instead of playing live")
	)
	flag.Parse()

	patch := fm.NewPatchDefinition()
	if err := patch.SetOperator(0, bellOperator()); err != nil {
		log.Fatalf("set operator: %v", err)
	}
	for i := 1; i < fm.OperatorCount; i++ {
		if err := patch.SetOperator(i, fm.DefaultOperatorDefinition()); err != nil {
			log.Fatalf("set operator: %v", err)
		}
	}
	patches := []*fm.PatchDefinition{patch}
	patterns := sequencer.DemoPattern()

	if *outPath != "" {
		samples, err := fourop.RenderSequence(patches, *bpm, patterns, *sampleRate, *seconds)
		if err != nil {
			log.Fatalf("render: %v", err)
		}
		wav := fourop.EncodeWAVFloat32LE(samples, *sampleRate, 2)
		if err := os.WriteFile(*outPath, wav, 0o644); err != nil {
			log.Fatalf("write %s: %v", *outPath, err)
		}
		fmt.Printf("wrote %s (%.1fs)\n", *outPath, *seconds)
		return
	}

	seq, err := sequencer.New(float64(*sampleRate), *bpm, patches, patterns)
	if err != nil {
		log.Fatalf("new sequencer: %v", err)
	}
	backend, err := intaudio.NewPlayer(*sampleRate, &sequencerSource{seq: seq})
	if err != nil {
		log.Fatalf("start audio: %v", err)
	}
	backend.Play()
	defer backend.Stop()

	fmt.Println("playing demo pattern, ctrl-c to stop")
	time.Sleep(time.Duration(*seconds * float64(time.Second)))
}

// sequencerSource adapts a Sequencer to the audio backend's pull
// interface, always rendering stereo (both channels identical).
type sequencerSource struct {
	seq *sequencer.Sequencer
}

func (s *sequencerSource) Process(dst []float32) {
	s.seq.Process(dst, 2)
}

// bellOperator gives operator 0 a fast attack and full sustain so the
// demo pattern is audible without hand-tuning a whole patch.
func bellOperator() fm.OperatorDefinition {
	def := fm.DefaultOperatorDefinition()
	def.Envelope = fm.EnvelopeParams{SustainLevel: 220, AttackRate: 255, DecayAttackRate: 40, DecaySustainRate: 40, ReleaseRate: 60}
	return def
}
