package fm

import "math"

// AttenuationMax is the silent end of the envelope attenuation range:
// 0 is loudest, ATTENUATION_MAX is silence.
const AttenuationMax = 1 << 10

const (
	sineLUTBits    = 16
	sineLUTEntries = 1 << sineLUTBits
	envDB          = 96.0
)

// sineLUT[i] = sin(i * 2*pi / sineLUTEntries), indexed by the top 16 bits
// of a 32-bit phase accumulator. Per-sample sin() is too expensive for a
// polyphonic realtime callback; the 16-bit index gives ~0.005 degrees of
// resolution, which is inaudible for single-operator FM modulation depths.
var sineLUT [sineLUTEntries]float64

// attenuation1025[i] realizes attenuation(i, AttenuationMax) for the
// envelope's current_attenuation axis.
var attenuation1025 [AttenuationMax + 1]float64

// attenuation256[i] realizes attenuation(i, 255) for the static
// total_level axis.
var attenuation256 [256]float64

func init() {
	for i := range sineLUT {
		sineLUT[i] = math.Sin(2 * math.Pi * float64(i) / float64(sineLUTEntries))
	}
	for i := range attenuation1025 {
		attenuation1025[i] = attenuationDB(i, AttenuationMax)
	}
	for i := range attenuation256 {
		attenuation256[i] = attenuationDB(i, 255)
	}
}

// attenuationDB computes 10^(-(96dB/(max+1)) * i / 20), an exponential
// (in dB) falloff from 1.0 at i=0 to ~0 at i=max.
func attenuationDB(i, max int) float64 {
	db := -(envDB / (float64(max) + 1.0)) * float64(i)
	return math.Pow(10, db/20.0)
}

// deltaPhase converts a frequency in Hz to the per-sample increment of a
// 32-bit phase accumulator at the given sample rate.
func deltaPhase(frequencyHz, sampleRate float64) uint32 {
	return uint32(frequencyHz * (4294967296.0 / sampleRate))
}

// phaseToRadians maps a 32-bit phase accumulator value onto [0, 2*pi).
func phaseToRadians(phase uint32) float64 {
	return (float64(phase) / 4294967296.0) * 2 * math.Pi
}

// sinRad looks up sin(x) for an arbitrary (possibly negative, possibly
// multi-cycle) radian value by folding it onto the sine LUT's domain.
// This is the "wherever sin appears" substitution point the waveform
// variants route through, so evaluate() stays cheap in the audio callback.
func sinRad(x float64) float64 {
	frac := math.Mod(x, 2*math.Pi)
	if frac < 0 {
		frac += 2 * math.Pi
	}
	index := uint32((frac / (2 * math.Pi)) * float64(sineLUTEntries))
	return sineLUT[index%sineLUTEntries]
}
