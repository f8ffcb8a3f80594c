package fm

import (
	"math"
	"math/rand"
)

// Waveform tags the oscillator shape an operator evaluates. The variants
// mirror the vintage OPL/DX tone-generator repertoire: the handful of
// standard shapes plus the OPL rectified/gated sines and the TX81Z
// inverted sines.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveHalfSine
	WaveAbsoluteSine
	WaveQuarterSine
	WaveAlternatingSine
	WaveCamelSine
	WaveInvertedSine
	WaveInvertedHalfSine
	WaveInvertedAlternatingSine
	WaveInvertedCamelSine
	WaveSquare
	WavePulse
	WaveSaw
	WaveTriangle
	WaveLogarithmicSaw
	WaveNoise
)

// String returns the stable serialization tag for a waveform, used by
// the GUI/parameter layer when persisting or displaying patch state.
func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveHalfSine:
		return "half_sine"
	case WaveAbsoluteSine:
		return "absolute_sine"
	case WaveQuarterSine:
		return "quarter_sine"
	case WaveAlternatingSine:
		return "alternating_sine"
	case WaveCamelSine:
		return "camel_sine"
	case WaveInvertedSine:
		return "inverted_sine"
	case WaveInvertedHalfSine:
		return "inverted_half_sine"
	case WaveInvertedAlternatingSine:
		return "inverted_alternating_sine"
	case WaveInvertedCamelSine:
		return "inverted_camel_sine"
	case WaveSquare:
		return "square"
	case WavePulse:
		return "pulse"
	case WaveSaw:
		return "saw"
	case WaveTriangle:
		return "triangle"
	case WaveLogarithmicSaw:
		return "logarithmic_saw"
	case WaveNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// IsValid reports whether w is one of the defined waveform tags.
func (w Waveform) IsValid() bool {
	return w >= WaveSine && w <= WaveNoise
}

const twoPi = 2 * math.Pi

// evaluate computes one waveform sample. phase and modulation are both
// radians; modulation is added to phase before the shape is evaluated,
// except for Noise which ignores both inputs. duty is only consulted
// for WavePulse and must be in (0,1).
func (w Waveform) evaluate(phase, modulation, duty float64) float64 {
	v := phase + modulation
	switch w {
	case WaveSine:
		return sinRad(v)
	case WaveHalfSine:
		if wrap(v) < math.Pi {
			return sinRad(v)
		}
		return 0
	case WaveAbsoluteSine:
		return math.Abs(sinRad(v))
	case WaveQuarterSine:
		if math.Mod(wrap(v), math.Pi) < math.Pi/2 {
			return math.Abs(sinRad(v))
		}
		return 0
	case WaveAlternatingSine:
		if wrap(v) < math.Pi {
			return sinRad(2 * v)
		}
		return 0
	case WaveCamelSine:
		return math.Abs(WaveAlternatingSine.evaluate(phase, modulation, duty))
	case WaveInvertedSine:
		return invertedSine(v)
	case WaveInvertedHalfSine:
		if wrap(v) < math.Pi {
			return invertedSine(v)
		}
		return 0
	case WaveInvertedAlternatingSine:
		if wrap(v) < math.Pi {
			return invertedSine(2 * v)
		}
		return 0
	case WaveInvertedCamelSine:
		return math.Abs(WaveInvertedAlternatingSine.evaluate(phase, modulation, duty))
	case WaveSquare:
		return math.Copysign(1, sinRad(v))
	case WavePulse:
		d := duty
		if d <= 0 || d >= 1 {
			d = 0.5
		}
		if (sinRad(v)+1)/2 < d {
			return -1
		}
		return 1
	case WaveSaw:
		return wrap(v)/math.Pi - 1
	case WaveTriangle:
		return math.Asin(sinRad(v)) / (math.Pi / 2)
	case WaveLogarithmicSaw:
		return math.Asin((wrap(v)-math.Pi)/math.Pi) / (-math.Pi / 2)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return 0
	}
}

// invertedSine implements the TX81Z-style inverted sine: four quarter
// periods of 1-cos / 1+cos with alternating sign.
func invertedSine(v float64) float64 {
	cos := math.Cos(v)
	switch w := wrap(v); {
	case w < twoPi*0.25:
		return 1 - cos
	case w < twoPi*0.5:
		return 1 + cos
	case w < twoPi*0.75:
		return -1 - cos
	default:
		return -1 + cos
	}
}

// wrap folds a radian value into [0, 2*pi).
func wrap(v float64) float64 {
	m := math.Mod(v, twoPi)
	if m < 0 {
		m += twoPi
	}
	return m
}
