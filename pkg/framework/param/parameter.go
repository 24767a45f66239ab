// Package param provides parameter management for plugins: descriptors with
// lock-free normalized values, plain/normalized mapping, formatting and an
// ordered registry.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Scale selects how a normalized value (0-1) maps onto the plain range.
type Scale int

const (
	// ScaleLinear maps normalized values linearly onto [Min, Max].
	ScaleLinear Scale = iota
	// ScaleLog maps normalized values exponentially onto [Min, Max].
	// Both bounds must be positive; otherwise the mapping falls back to linear.
	ScaleLog
)

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32
	Flags        uint32
	UnitID       int32
	Scale        Scale

	// normalized value bits, read from the audio goroutine
	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate     uint32 = 1 << 0
	IsReadOnly      uint32 = 1 << 1
	IsWrapAround    uint32 = 1 << 2
	IsList          uint32 = 1 << 3
	IsHidden        uint32 = 1 << 4
	IsProgramChange uint32 = 1 << 15
	IsBypass        uint32 = 1 << 16
)

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue sets the normalized value (0-1), clamping out of range input.
func (p *Parameter) SetValue(value float64) {
	p.value.Store(math.Float64bits(clamp01(value)))
}

// GetPlainValue converts the current normalized value to its plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue stores a plain value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// DefaultPlain returns the default as a plain value.
func (p *Parameter) DefaultPlain() float64 {
	return p.Denormalize(p.DefaultValue)
}

// Clamp limits a plain value to [Min, Max].
func (p *Parameter) Clamp(plain float64) float64 {
	if plain < p.Min {
		return p.Min
	}
	if plain > p.Max {
		return p.Max
	}
	return plain
}

// FormatPlain formats a plain value.
func (p *Parameter) FormatPlain(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// FormatValue returns the formatted text for a normalized value
func (p *Parameter) FormatValue(normalized float64) string {
	return p.FormatPlain(p.Denormalize(normalized))
}

// ParseValue parses text to a normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	var (
		plain float64
		err   error
	)
	if p.parseFunc != nil {
		plain, err = p.parseFunc(str)
	} else {
		plain, err = strconv.ParseFloat(str, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", p.Name, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts a plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	if p.logScaled() {
		if plain <= p.Min {
			return 0
		}
		return clamp01(math.Log(plain/p.Min) / math.Log(p.Max/p.Min))
	}
	return clamp01((plain - p.Min) / (p.Max - p.Min))
}

// Denormalize converts normalized (0-1) to a plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	normalized = clamp01(normalized)
	if p.logScaled() {
		return p.Min * math.Pow(p.Max/p.Min, normalized)
	}
	return p.Min + normalized*(p.Max-p.Min)
}

func (p *Parameter) logScaled() bool {
	return p.Scale == ScaleLog && p.Min > 0 && p.Max > p.Min
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
