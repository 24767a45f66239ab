// Package filter provides state variable filters and a three-band crossover.
package filter

import "math"

// SVF is a zero-delay feedback state variable filter. Each channel keeps its
// own integrator state; coefficients are shared and only recomputed by Tune.
type SVF struct {
	k          float32
	a1, a2, a3 float32

	ic1 []float32
	ic2 []float32
}

// Response is the simultaneous output of one SVF tick.
type Response struct {
	Low  float32
	Band float32
	High float32
}

// NewSVF creates a filter for the given channel count. Call Tune before use.
func NewSVF(channels int) *SVF {
	return &SVF{
		ic1: make([]float32, channels),
		ic2: make([]float32, channels),
	}
}

// Tune sets the cutoff and resonance. hz is prewarped for sampleRate.
func (s *SVF) Tune(sampleRate, hz, q float64) {
	g := math.Tan(math.Pi * hz / sampleRate)
	k := 1 / q
	a1 := 1 / (1 + g*(g+k))
	s.k = float32(k)
	s.a1 = float32(a1)
	s.a2 = float32(g * a1)
	s.a3 = float32(g * g * a1)
}

// Tick filters one sample of channel ch.
func (s *SVF) Tick(x float32, ch int) Response {
	ic1, ic2 := s.ic1[ch], s.ic2[ch]

	v3 := x - ic2
	v1 := s.a1*ic1 + s.a2*v3
	v2 := ic2 + s.a2*ic1 + s.a3*v3

	s.ic1[ch] = 2*v1 - ic1
	s.ic2[ch] = 2*v2 - ic2

	return Response{
		Low:  v2,
		Band: v1,
		High: x - s.k*v1 - v2,
	}
}

// Reset clears the integrators of every channel.
func (s *SVF) Reset() {
	clear(s.ic1)
	clear(s.ic2)
}
