package debug

import (
	"math"
	"testing"
)

func TestLevelStats(t *testing.T) {
	var s LevelStats
	s.Add([]float32{0.5, -0.5, 0.5, -0.5})
	s.Add([]float32{})

	if s.Peak != 0.5 {
		t.Errorf("Peak = %f, want 0.5", s.Peak)
	}
	if got := s.RMS(); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("RMS = %f, want 0.5", got)
	}
	if got := s.PeakDB(); math.Abs(got+6.0206) > 0.001 {
		t.Errorf("PeakDB = %f, want -6.02", got)
	}
	if len(s.Issues("out")) != 0 {
		t.Errorf("unexpected issues: %v", s.Issues("out"))
	}

	s.Add([]float32{1.2, float32(math.NaN())})
	issues := s.Issues("out")
	if len(issues) != 2 {
		t.Fatalf("Issues = %v, want clipping and NaN", issues)
	}
	if s.Samples != 5 {
		t.Errorf("Samples = %d, want 5 (NaN excluded)", s.Samples)
	}
}

func TestLevelStatsSilence(t *testing.T) {
	var s LevelStats
	s.Add(make([]float32, 64))
	if !math.IsInf(s.PeakDB(), -1) {
		t.Errorf("PeakDB of silence = %f", s.PeakDB())
	}
	if s.RMS() != 0 {
		t.Errorf("RMS of silence = %f", s.RMS())
	}
}
