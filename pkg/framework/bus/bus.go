// Package bus describes the audio inputs and outputs of a processor.
package bus

import "fmt"

// Direction tells inputs from outputs.
type Direction int32

const (
	Input Direction = iota
	Output
)

// Info describes one bus.
type Info struct {
	Direction Direction
	Channels  int
	Name      string
	Active    bool
}

// Configuration is the ordered bus list of a processor.
type Configuration struct {
	buses []Info
}

// NewStereoConfiguration returns one active stereo input and output.
func NewStereoConfiguration() *Configuration {
	return &Configuration{buses: []Info{
		{Direction: Input, Channels: 2, Name: "Stereo In", Active: true},
		{Direction: Output, Channels: 2, Name: "Stereo Out", Active: true},
	}}
}

// Count returns the number of buses in direction d.
func (c *Configuration) Count(d Direction) int {
	n := 0
	for _, b := range c.buses {
		if b.Direction == d {
			n++
		}
	}
	return n
}

// Bus returns the index-th bus in direction d.
func (c *Configuration) Bus(d Direction, index int) (*Info, bool) {
	for i := range c.buses {
		if c.buses[i].Direction != d {
			continue
		}
		if index == 0 {
			return &c.buses[i], true
		}
		index--
	}
	return nil, false
}

// MainChannelCount returns the channel count of the first active bus in
// direction d, or 0.
func (c *Configuration) MainChannelCount(d Direction) int {
	for _, b := range c.buses {
		if b.Direction == d && b.Active {
			return b.Channels
		}
	}
	return 0
}

// String summarizes the main channel counts, e.g. "2 in / 2 out".
func (c *Configuration) String() string {
	return fmt.Sprintf("%d in / %d out", c.MainChannelCount(Input), c.MainChannelCount(Output))
}
