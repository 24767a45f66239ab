// Package modulation provides modulation effects: LFOs and a flanger.
package modulation

import "math"

// Shape selects the LFO waveform.
type Shape int

const (
	// Sine starts at 0 and peaks at a quarter cycle.
	Sine Shape = iota
	// Triangle starts at -1 and peaks at half a cycle.
	Triangle
)

// MaxLFOFrequency is the highest LFO rate in Hz.
const MaxLFOFrequency = 20.0

// LFO is a phase accumulator producing a bipolar control signal in [-1, 1].
// At 0 Hz it holds its current phase.
type LFO struct {
	sampleRate float64
	shape      Shape

	hz    float64
	inc   float64 // phase advance per sample
	phase float64 // [0, 1)
	start float64 // phase restored by Reset
}

// NewLFO creates a 1 Hz sine LFO.
func NewLFO(sampleRate float64) *LFO {
	l := &LFO{sampleRate: sampleRate}
	l.SetFrequency(1)
	return l
}

// SetShape changes the waveform without moving the phase.
func (l *LFO) SetShape(s Shape) {
	l.shape = s
}

// SetFrequency sets the rate, limited to 0..MaxLFOFrequency Hz.
func (l *LFO) SetFrequency(hz float64) {
	l.hz = max(0, min(MaxLFOFrequency, hz))
	l.inc = l.hz / l.sampleRate
}

// Frequency returns the rate in Hz.
func (l *LFO) Frequency() float64 {
	return l.hz
}

// SetPhase moves the LFO to phase, wrapped into [0, 1). Reset returns here.
func (l *LFO) SetPhase(phase float64) {
	l.phase = phase - math.Floor(phase)
	l.start = l.phase
}

// Phase returns the current phase in [0, 1).
func (l *LFO) Phase() float64 {
	return l.phase
}

// Next returns the value at the current phase, then advances one sample.
func (l *LFO) Next() float64 {
	var v float64
	switch l.shape {
	case Triangle:
		v = 1 - 4*math.Abs(l.phase-0.5)
	default:
		v = math.Sin(2 * math.Pi * l.phase)
	}

	l.phase += l.inc
	if l.phase >= 1 {
		l.phase--
	}
	return v
}

// Reset returns to the phase last set with SetPhase.
func (l *LFO) Reset() {
	l.phase = l.start
}
