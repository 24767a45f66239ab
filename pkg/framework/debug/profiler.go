package debug

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// BlockMeter measures how long each audio block takes to process relative to
// the real-time budget of that block. Record is lock-free so it can be called
// from the audio goroutine.
type BlockMeter struct {
	sampleRate float64

	count    atomic.Uint64
	total    atomic.Int64 // ns spent processing
	budget   atomic.Int64 // ns of audio processed
	worst    atomic.Int64 // ns, slowest block
	overruns atomic.Uint64
}

// NewBlockMeter creates a meter for the given sample rate.
func NewBlockMeter(sampleRate float64) *BlockMeter {
	return &BlockMeter{sampleRate: sampleRate}
}

// Start begins timing a block of numSamples frames and returns the function
// that ends the measurement.
func (m *BlockMeter) Start(numSamples int) func() {
	start := time.Now()
	return func() {
		m.Record(numSamples, time.Since(start))
	}
}

// Record adds one block measurement.
func (m *BlockMeter) Record(numSamples int, elapsed time.Duration) {
	if numSamples <= 0 || m.sampleRate <= 0 {
		return
	}
	budget := time.Duration(float64(numSamples) / m.sampleRate * float64(time.Second))

	m.count.Add(1)
	m.total.Add(int64(elapsed))
	m.budget.Add(int64(budget))
	if elapsed > budget {
		m.overruns.Add(1)
	}
	for {
		worst := m.worst.Load()
		if int64(elapsed) <= worst || m.worst.CompareAndSwap(worst, int64(elapsed)) {
			break
		}
	}
}

// Load returns the average processing time as a percentage of real time.
func (m *BlockMeter) Load() float64 {
	budget := m.budget.Load()
	if budget == 0 {
		return 0
	}
	return float64(m.total.Load()) / float64(budget) * 100.0
}

// Blocks returns the number of recorded blocks.
func (m *BlockMeter) Blocks() uint64 {
	return m.count.Load()
}

// Overruns returns how many blocks took longer than their real-time budget.
func (m *BlockMeter) Overruns() uint64 {
	return m.overruns.Load()
}

// Reset clears all measurements.
func (m *BlockMeter) Reset() {
	m.count.Store(0)
	m.total.Store(0)
	m.budget.Store(0)
	m.worst.Store(0)
	m.overruns.Store(0)
}

// Report formats the measurements.
func (m *BlockMeter) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "blocks=%d", m.Blocks())
	fmt.Fprintf(&sb, " load=%.2f%%", m.Load())
	fmt.Fprintf(&sb, " worst=%v", time.Duration(m.worst.Load()))
	fmt.Fprintf(&sb, " overruns=%d", m.Overruns())
	return sb.String()
}
