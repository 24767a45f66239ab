// Package gain converts levels and limits sample peaks.
package gain

import "math"

// Floor is the level, in dB, at and below which DbToLinear returns silence.
const Floor = -120.0

// DbToLinear converts a level in dB to a linear amplitude factor.
func DbToLinear(db float64) float64 {
	if db <= Floor {
		return 0
	}
	return math.Pow(10, db/20)
}

// Clip limits x to the range [-ceiling, ceiling].
func Clip(x, ceiling float32) float32 {
	return max(-ceiling, min(x, ceiling))
}

// ClipBuffer clips buf in place and returns the number of samples that hit
// the ceiling.
func ClipBuffer(buf []float32, ceiling float32) int {
	clipped := 0
	for i, x := range buf {
		if x > ceiling || x < -ceiling {
			buf[i] = Clip(x, ceiling)
			clipped++
		}
	}
	return clipped
}
