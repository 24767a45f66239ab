package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
)

// Host is the parameter store the adapter pushes edits to. Values are plain.
type Host interface {
	BeginEdit(id uint32) error
	SetValue(id uint32, value float64) error
	EndEdit(id uint32) error
}

// Slow and fast spans of the speed knobs, in Hz.
const (
	SlowSpeedSpan = 2.0
	FastSpeedSpan = 20.0
)

// Adapter mirrors the host parameters and drives host edits from user
// gestures. It is single threaded: the host's change notifications and the
// panel's frame callbacks must arrive on the same goroutine.
type Adapter struct {
	host   Host
	policy EndEditPolicy
	log    *debug.Logger

	mirror Mirror

	// gesture state
	active  int // index under interaction, -1 when idle
	touched [fl3ngr.NumParams]bool

	fast    [fl3ngr.NumBands]bool
	repaint bool
}

// NewAdapter creates an adapter with every mirror slot at its default.
func NewAdapter(host Host, policy EndEditPolicy) *Adapter {
	return &Adapter{
		host:   host,
		policy: policy,
		log:    debug.Default().With("editor"),
		mirror: DefaultMirror(),
		active: -1,
		fast:   [fl3ngr.NumBands]bool{true, true, true},
	}
}

// SetLogger replaces the adapter's logger.
func (a *Adapter) SetLogger(l *debug.Logger) {
	a.log = l
}

// Policy returns the end-edit policy.
func (a *Adapter) Policy() EndEditPolicy {
	return a.policy
}

// ParameterChanged is the host's change notification. Indices outside 0-15
// are ignored. A value for the parameter under an active gesture is dropped
// because the panel owns that value until the gesture ends.
func (a *Adapter) ParameterChanged(index int, value float64) {
	if !inRange(index) {
		return
	}
	if a.active >= 0 && a.touched[index] {
		a.log.Debug("dropping host value %f for parameter %d during edit", value, index)
		return
	}
	a.mirror[index] = value
	a.repaint = true
}

// Value returns the mirrored value of a parameter, or 0 outside 0-15.
func (a *Adapter) Value(index int) float64 {
	if !inRange(index) {
		return 0
	}
	return a.mirror[index]
}

// Mirror returns a copy of all mirrored values.
func (a *Adapter) Mirror() Mirror {
	return a.mirror
}

// Active returns the index under interaction and whether a gesture is open.
func (a *Adapter) Active() (int, bool) {
	return a.active, a.active >= 0
}

// ConsumeRepaint reports whether a repaint was requested since the last call.
func (a *Adapter) ConsumeRepaint() bool {
	r := a.repaint
	a.repaint = false
	return r
}

// Begin starts a gesture on a control. It is a no-op while the same control
// is already active; a gesture on another control is ended first.
func (a *Adapter) Begin(index int) {
	if !inRange(index) {
		return
	}
	if a.active == index {
		return
	}
	if a.active >= 0 {
		a.End()
	}
	a.active = index
	a.touched[index] = true
	a.call("begin edit", index, a.host.BeginEdit(uint32(index)))
}

// Change streams a new widget value for a control. The value is clamped to the
// parameter range and only sent when it differs from the mirror. A change
// without an open gesture begins one.
func (a *Adapter) Change(index int, value float64) {
	spec, ok := fl3ngr.SpecAt(index)
	if !ok {
		return
	}
	if a.active != index {
		a.Begin(index)
	}
	value = spec.Clamp(value)
	if value == a.mirror[index] {
		return
	}
	a.mirror[index] = value
	a.repaint = true
	a.call("set value", index, a.host.SetValue(uint32(index), value))
}

// Reset returns a control to its default and pushes the default to the host
// with exactly one set-value call.
func (a *Adapter) Reset(index int) {
	spec, ok := fl3ngr.SpecAt(index)
	if !ok {
		return
	}
	if a.active != index {
		a.Begin(index)
	}
	a.mirror[index] = spec.Default
	a.repaint = true
	a.call("set value", index, a.host.SetValue(uint32(index), spec.Default))
}

// End releases the current gesture and issues edit-end according to the
// policy. It is a no-op when no gesture is open.
func (a *Adapter) End() {
	if a.active < 0 {
		return
	}
	for i := range a.touched {
		if a.policy == EndEditAll || a.touched[i] {
			a.call("end edit", i, a.host.EndEdit(uint32(i)))
		}
		a.touched[i] = false
	}
	a.active = -1
}

func (a *Adapter) call(op string, index int, err error) {
	if err != nil {
		a.log.Debug("%s %d: %v", op, index, err)
	}
}

// ToggleRange flips a band's speed display between slow and fast. It never
// produces host calls.
func (a *Adapter) ToggleRange(b fl3ngr.Band) {
	if b < 0 || int(b) >= fl3ngr.NumBands {
		return
	}
	a.fast[b] = !a.fast[b]
	a.repaint = true
}

// FastRange reports whether a band's speed knob shows the full range.
func (a *Adapter) FastRange(b fl3ngr.Band) bool {
	if b < 0 || int(b) >= fl3ngr.NumBands {
		return true
	}
	return a.fast[b]
}

// SpeedSpan returns the upper bound of a band's speed knob display in Hz.
func (a *Adapter) SpeedSpan(b fl3ngr.Band) float64 {
	if a.FastRange(b) {
		return FastSpeedSpan
	}
	return SlowSpeedSpan
}

var errRangeState = errors.New("invalid range state")

// SaveRanges writes the three range toggles, one byte per band.
func (a *Adapter) SaveRanges(w io.Writer) error {
	var buf [fl3ngr.NumBands]byte
	for i, f := range a.fast {
		if f {
			buf[i] = 1
		}
	}
	_, err := w.Write(buf[:])
	return err
}

// LoadRanges restores toggles written by SaveRanges.
func (a *Adapter) LoadRanges(r io.Reader) error {
	var buf [fl3ngr.NumBands]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fmt.Errorf("%w: %v", errRangeState, err)
	}
	for i, b := range buf {
		if b > 1 {
			return fmt.Errorf("%w: byte %d is %d", errRangeState, i, b)
		}
	}
	for i, b := range buf {
		a.fast[i] = b == 1
	}
	a.repaint = true
	return nil
}
