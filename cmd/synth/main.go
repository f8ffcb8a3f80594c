// Command synth is a keyboard-driven FM instrument: press zxcvbnm,./ to
// play a C-major scale, 0-9 to switch every operator's waveform, and
// watch the live oscilloscope and patch readout update as you play.
package main

import (
	"image"
	"image/color"
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	fourop "github.com/rdavenport/fourop"
	"github.com/rdavenport/fourop/internal/fm"
)

const (
	windowW      = 900
	windowH      = 560
	uiSampleRate = 48000

	textScale = 2
	lineH     = 14 * textScale
)

var (
	bgColor     = color.RGBA{192, 192, 192, 255}
	bevelLight  = color.RGBA{255, 255, 255, 255}
	bevelDarker = color.RGBA{64, 64, 64, 255}
	sunkenBg    = color.RGBA{24, 24, 32, 255}
	scopeColor  = color.RGBA{64, 255, 64, 255}
)

// keyNotes maps the zxcvbnm,./ row to a C-major scale from A3 to C5, the
// same ten-key layout the original keyboard demo used.
var keyNotes = []struct {
	key  ebiten.Key
	note int
}{
	{ebiten.KeyZ, 57},      // A3
	{ebiten.KeyX, 59},      // B3
	{ebiten.KeyC, 60},      // C4
	{ebiten.KeyV, 62},      // D4
	{ebiten.KeyB, 64},      // E4
	{ebiten.KeyN, 65},      // F4
	{ebiten.KeyM, 67},      // G4
	{ebiten.KeyComma, 69},  // A4
	{ebiten.KeyPeriod, 71}, // B4
	{ebiten.KeySlash, 72},  // C5
}

// waveformKeys maps the number row to the ten waveforms the original
// demo cycled through on a bare oscillator.
var waveformKeys = []struct {
	key ebiten.Key
	wf  fm.Waveform
}{
	{ebiten.KeyDigit1, fm.WaveSine},
	{ebiten.KeyDigit2, fm.WaveSquare},
	{ebiten.KeyDigit3, fm.WaveSaw},
	{ebiten.KeyDigit4, fm.WaveTriangle},
	{ebiten.KeyDigit5, fm.WaveHalfSine},
	{ebiten.KeyDigit6, fm.WaveAbsoluteSine},
	{ebiten.KeyDigit7, fm.WaveQuarterSine},
	{ebiten.KeyDigit8, fm.WaveAlternatingSine},
	{ebiten.KeyDigit9, fm.WaveCamelSine},
	{ebiten.KeyDigit0, fm.WaveLogarithmicSaw},
}

type game struct {
	player *fourop.Player
}

func (g *game) Update() error {
	for i, kn := range keyNotes {
		switch {
		case inpututil.IsKeyJustPressed(kn.key):
			if err := g.player.NoteOn(i, kn.note); err != nil {
				log.Printf("note on: %v", err)
			}
		case inpututil.IsKeyJustReleased(kn.key):
			if err := g.player.NoteOff(i); err != nil {
				log.Printf("note off: %v", err)
			}
		}
	}

	for _, wk := range waveformKeys {
		if inpututil.IsKeyJustPressed(wk.key) {
			patch := g.player.Patch()
			for op := 0; op < fm.OperatorCount; op++ {
				def := patch.Operator(op)
				def.Waveform = wk.wf
				if err := patch.SetOperator(op, def); err != nil {
					log.Printf("set operator: %v", err)
				}
			}
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	g.drawScope(screen, 20, 20, windowW-40, 200)
	g.drawPatchReadout(screen, 20, 240)
	ebitenutil.DebugPrintAt(screen, "zxcvbnm,./ = play notes    0-9 = change waveform", 20, windowH-30)
}

func (g *game) drawScope(screen *ebiten.Image, x, y, w, h int) {
	bevel(screen, x, y, w, h, false)
	inner := screen.SubImage(image.Rect(x+2, y+2, x+w-2, y+h-2)).(*ebiten.Image)
	inner.Fill(sunkenBg)

	samples := g.player.Scope(w - 4)
	mid := float32(h-4) / 2
	for i, s := range samples {
		px := x + 2 + i
		py := int(float32(y+2) + mid - s*mid)
		screen.Set(px, py, scopeColor)
	}
}

func (g *game) drawPatchReadout(screen *ebiten.Image, x, y int) {
	patch := g.player.Patch()
	snap := patch.Snapshot()
	line := y
	ebitenutil.DebugPrintAt(screen, "algorithm "+strconv.Itoa(int(snap.Algorithm))+"  feedback "+strconv.Itoa(snap.Feedback), x, line)
	for i, def := range snap.Operators {
		ebitenutil.DebugPrintAt(screen, "op"+strconv.Itoa(i)+": "+def.Waveform.String(), x, line+lineH*(i+1))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowW, windowH
}

// bevel draws an embossed (raised) or sunken 2px border, the same
// old-school widget look the GUI demo used throughout.
func bevel(screen *ebiten.Image, x, y, w, h int, raised bool) {
	light, dark := bevelLight, bevelDarker
	if !raised {
		light, dark = dark, light
	}
	top := screen.SubImage(image.Rect(x, y, x+w, y+2)).(*ebiten.Image)
	top.Fill(light)
	bottom := screen.SubImage(image.Rect(x, y+h-2, x+w, y+h)).(*ebiten.Image)
	bottom.Fill(dark)
	left := screen.SubImage(image.Rect(x, y, x+2, y+h)).(*ebiten.Image)
	left.Fill(light)
	right := screen.SubImage(image.Rect(x+w-2, y, x+w, y+h)).(*ebiten.Image)
	right.Fill(dark)
}

func main() {
	player, err := fourop.NewPlayer(uiSampleRate, fourop.WithVoiceCount(len(keyNotes)))
	if err != nil {
		log.Fatalf("new player: %v", err)
	}
	if err := player.Start(); err != nil {
		log.Fatalf("start audio: %v", err)
	}
	defer player.Stop()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("fourop synth")
	if err := ebiten.RunGame(&game{player: player}); err != nil {
		log.Fatal(err)
	}
}
