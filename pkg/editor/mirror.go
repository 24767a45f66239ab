// Package editor keeps the panel's local copy of the 16 FL3NGR parameters in
// sync with the host and turns user gestures into host edit calls.
package editor

import (
	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
)

// Mirror is the panel's local copy of the parameter values, indexed by host
// parameter index.
type Mirror [fl3ngr.NumParams]float64

// DefaultMirror returns a mirror holding every parameter's default.
func DefaultMirror() Mirror {
	var m Mirror
	for i, s := range fl3ngr.Specs() {
		m[i] = s.Default
	}
	return m
}

// inRange reports whether index addresses a mirror slot.
func inRange(index int) bool {
	return index >= 0 && index < fl3ngr.NumParams
}
