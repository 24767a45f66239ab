package filter

import (
	"math"
	"testing"
)

func TestCrossoverBandsSumToInput(t *testing.T) {
	for _, center := range []float64{313.3, 1337, 5705.6} {
		c := NewCrossover(44100, 2)
		c.SetCenter(center)

		n := 4096
		in := make([]float32, n)
		for i := range in {
			in[i] = float32(math.Sin(float64(i)*0.013) + 0.3*math.Sin(float64(i)*0.71))
		}
		low := make([]float32, n)
		mid := make([]float32, n)
		high := make([]float32, n)

		c.Split(1, in, low, mid, high)

		for i := range in {
			if sum := low[i] + mid[i] + high[i]; math.Abs(float64(sum-in[i])) > 1e-5 {
				t.Fatalf("center %.1f sample %d: bands sum to %f, input %f", center, i, sum, in[i])
			}
		}
	}
}

func TestCrossoverSeparatesBands(t *testing.T) {
	sampleRate := 48000.0
	tests := []struct {
		name string
		freq float64
		band int // 0 low, 1 mid, 2 high
	}{
		{"bass", 60, 0},
		{"center", 1337, 1},
		{"treble", 15000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCrossover(sampleRate, 1)
			c.SetCenter(1337)

			n := int(sampleRate / 2)
			in := make([]float32, n)
			for i := range in {
				in[i] = float32(math.Sin(2 * math.Pi * tt.freq * float64(i) / sampleRate))
			}
			bands := [3][]float32{make([]float32, n), make([]float32, n), make([]float32, n)}
			c.Split(0, in, bands[0], bands[1], bands[2])

			var energy [3]float64
			for b := range bands {
				for _, v := range bands[b][n/2:] {
					energy[b] += float64(v) * float64(v)
				}
			}
			for b := range energy {
				if b != tt.band && energy[b] >= energy[tt.band] {
					t.Errorf("band %d energy %f >= expected band %d energy %f", b, energy[b], tt.band, energy[tt.band])
				}
			}
		})
	}
}

func TestCrossoverClampsToNyquist(t *testing.T) {
	c := NewCrossover(8000, 1)
	c.SetCenter(5705.6)
	if c.Center() != 5705.6 {
		t.Errorf("Center = %f", c.Center())
	}

	// upper split would be 11.4kHz, above Nyquist; output must stay finite
	in := make([]float32, 512)
	for i := range in {
		in[i] = float32(math.Sin(float64(i)))
	}
	low, mid, high := make([]float32, 512), make([]float32, 512), make([]float32, 512)
	c.Split(0, in, low, mid, high)
	for i := range in {
		if math.IsNaN(float64(high[i])) || math.IsInf(float64(high[i]), 0) {
			t.Fatalf("non-finite output at %d", i)
		}
	}
}
