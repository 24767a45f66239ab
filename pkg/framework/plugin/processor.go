// Package plugin provides plugin metadata and a base processor that removes
// boilerplate from processor implementations.
package plugin

import (
	"github.com/justyntemme/fl3ngr/pkg/framework/bus"
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
)

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	params       *param.Registry
	buses        *bus.Configuration
	sampleRate   float64
	maxBlockSize int32
	active       bool

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onReset      func()
}

// NewBaseProcessor creates a new base processor with the given bus configuration
func NewBaseProcessor(buses *bus.Configuration) *BaseProcessor {
	if buses == nil {
		buses = bus.NewStereoConfiguration()
	}

	return &BaseProcessor{
		params: param.NewRegistry(),
		buses:  buses,
	}
}

// Initialize stores the processing setup and runs the OnInitialize callback.
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}
	return nil
}

// GetParameters returns the parameter registry
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// GetBuses returns the bus configuration
func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// SetActive starts or stops processing. Deactivation runs the OnReset callback.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.active && b.onReset != nil {
		b.onReset()
	}
	b.active = active
	return nil
}

// IsActive reports whether processing is running.
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// GetLatencySamples returns 0; processors with latency override it.
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns 0; processors with a tail override it.
func (b *BaseProcessor) GetTailSamples() int32 {
	return 0
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the block size passed to Initialize.
func (b *BaseProcessor) MaxBlockSize() int32 {
	return b.maxBlockSize
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}
