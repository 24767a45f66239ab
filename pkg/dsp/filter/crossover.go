package filter

import "math"

// Butterworth Q for the crossover sections
const crossoverQ = 0.7071067811865476

// MaxCrossoverRatio limits crossover frequencies relative to the sample rate.
const MaxCrossoverRatio = 0.45

// Crossover splits a signal into low, mid and high bands around a center
// frequency. The low band is lowpassed at center/2, the high band highpassed
// at center*2, and the mid band is the remainder, so the three bands always
// sum back to the input.
type Crossover struct {
	sampleRate float64
	center     float64
	low        *SVF
	high       *SVF
}

// NewCrossover creates a crossover for the given channel count.
func NewCrossover(sampleRate float64, channels int) *Crossover {
	c := &Crossover{
		sampleRate: sampleRate,
		low:        NewSVF(channels),
		high:       NewSVF(channels),
	}
	c.SetCenter(1000)
	return c
}

// SetCenter moves both split points. The upper split is kept below
// MaxCrossoverRatio of the sample rate.
func (c *Crossover) SetCenter(hz float64) {
	if hz == c.center {
		return
	}
	c.center = hz
	limit := c.sampleRate * MaxCrossoverRatio
	c.low.Tune(c.sampleRate, math.Min(hz/2, limit), crossoverQ)
	c.high.Tune(c.sampleRate, math.Min(hz*2, limit), crossoverQ)
}

// Center returns the current center frequency.
func (c *Crossover) Center() float64 {
	return c.center
}

// Split processes one channel. in is left untouched; low, mid and high must
// be at least as long as in.
func (c *Crossover) Split(channel int, in, low, mid, high []float32) {
	for i, x := range in {
		l := c.low.Tick(x, channel).Low
		h := c.high.Tick(x, channel).High
		low[i] = l
		high[i] = h
		mid[i] = x - l - h
	}
}

// Reset clears the filter state.
func (c *Crossover) Reset() {
	c.low.Reset()
	c.high.Reset()
}
