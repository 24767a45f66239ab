// Package plugin provides the plugin contract and the edit controller that
// owns canonical parameter values on the host side.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/justyntemme/fl3ngr/pkg/framework/bus"
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
	"github.com/justyntemme/fl3ngr/pkg/framework/plugin"
	"github.com/justyntemme/fl3ngr/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called when the plugin is created
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// FactoryInfo describes the vendor publishing the registered plugins.
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

var (
	registryMu  sync.RWMutex
	registered  = make(map[string]Plugin)
	factoryInfo = FactoryInfo{
		Vendor: "Wasted Audio",
		URL:    "https://wasted.audio",
	}
)

// Register adds a plugin to the factory. Registering an id twice replaces the
// earlier plugin.
func Register(p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered[p.GetInfo().ID] = p
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factoryInfo = info
}

// Factory returns the factory information
func Factory() FactoryInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return factoryInfo
}

// Lookup returns the registered plugin with the given id.
func Lookup(id string) (Plugin, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registered[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, id)
	}
	return p, nil
}

// Plugins returns every registered plugin sorted by id.
func Plugins() []Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Plugin, 0, len(registered))
	for _, p := range registered {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GetInfo().ID < out[j].GetInfo().ID
	})
	return out
}
