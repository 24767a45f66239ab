package debug

import (
	"fmt"
	"math"
)

// LevelStats accumulates level statistics over a stream of audio blocks.
type LevelStats struct {
	Peak     float32
	Samples  int
	Clipped  int
	NaNCount int

	sumSquares float64
}

// Add accumulates one buffer of samples.
func (s *LevelStats) Add(buffer []float32) {
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) || math.IsInf(float64(sample), 0) {
			s.NaNCount++
			continue
		}
		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > s.Peak {
			s.Peak = abs
		}
		if abs >= 1.0 {
			s.Clipped++
		}
		s.sumSquares += float64(sample) * float64(sample)
		s.Samples++
	}
}

// RMS returns the root mean square level of everything added so far.
func (s *LevelStats) RMS() float32 {
	if s.Samples == 0 {
		return 0
	}
	return float32(math.Sqrt(s.sumSquares / float64(s.Samples)))
}

// PeakDB returns the peak level in dBFS, or -inf for silence.
func (s *LevelStats) PeakDB() float64 {
	if s.Peak == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(s.Peak))
}

// Issues returns human readable descriptions of problems in the stream.
func (s *LevelStats) Issues(name string) []string {
	var issues []string
	if s.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d non-finite samples", name, s.NaNCount))
	}
	if s.Clipped > 0 {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, s.Clipped))
	}
	return issues
}

// String formats the statistics for logging.
func (s *LevelStats) String() string {
	return fmt.Sprintf("samples=%d peak=%.1fdBFS rms=%.4f clipped=%d", s.Samples, s.PeakDB(), s.RMS(), s.Clipped)
}
