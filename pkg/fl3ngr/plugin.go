package fl3ngr

import (
	fwplugin "github.com/justyntemme/fl3ngr/pkg/framework/plugin"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

// PluginID is the reverse-DNS id the class UID is derived from.
const PluginID = "audio.wasted.fl3ngr"

func init() {
	plugin.Register(&Plugin{})
}

// Plugin describes FL3NGR to a host.
type Plugin struct{}

// GetInfo returns plugin metadata
func (Plugin) GetInfo() fwplugin.Info {
	return fwplugin.Info{
		ID:       PluginID,
		Name:     "WSTD FL3NGR",
		Version:  "1.0.0",
		Vendor:   "Wasted Audio",
		Category: "Fx|Modulation",
	}
}

// CreateProcessor creates a new audio processor instance.
func (Plugin) CreateProcessor() plugin.Processor {
	return NewProcessor()
}
