package param

import "math"

// settle is the distance at which a smoother snaps to its target.
const settle = 1e-4

// Smoother ramps a control value toward its target with a one-pole lowpass so
// block-rate parameter changes do not step audibly.
type Smoother struct {
	pole    float64
	current float64
	target  float64
	moving  bool
}

// NewSmoother creates a smoother with a pole in (0, 1); values closer to 1
// ramp more slowly.
func NewSmoother(pole float64) *Smoother {
	return &Smoother{pole: pole}
}

// NewSmootherForTime creates a smoother that closes 60 dB of any jump within
// timeMs at the given sample rate.
func NewSmootherForTime(sampleRate, timeMs float64) *Smoother {
	return NewSmoother(math.Exp(-3 * math.Ln10 / (sampleRate * timeMs / 1000)))
}

// SetTarget starts a ramp toward target. Changes smaller than the settle
// distance are ignored.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < settle {
		return
	}
	s.target = target
	s.moving = true
}

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float64 {
	if !s.moving {
		return s.current
	}
	s.current = s.target + (s.current-s.target)*s.pole
	if math.Abs(s.current-s.target) < settle {
		s.current = s.target
		s.moving = false
	}
	return s.current
}

// Current returns the last value without advancing.
func (s *Smoother) Current() float64 {
	return s.current
}

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.moving
}

// Reset jumps to value and stops any ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.moving = false
}
