package host

import (
	"bytes"
	"math"
	"testing"

	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

func newTestController() *plugin.Controller {
	ctrl := plugin.NewController(fl3ngr.NewProcessor().GetParameters())
	ctrl.SetLogger(debug.New(&bytes.Buffer{}, "test", 0))
	return ctrl
}

func TestNewEditorFollowsController(t *testing.T) {
	ctrl := newTestController()
	if err := ctrl.SetParamPlain(fl3ngr.ParamHighMix, 75); err != nil {
		t.Fatal(err)
	}

	adapter := NewEditor(ctrl, editor.EndEditAll)
	adapter.SetLogger(debug.New(&bytes.Buffer{}, "test", 0))
	if got := adapter.Value(int(fl3ngr.ParamHighMix)); math.Abs(got-75) > 1e-9 {
		t.Errorf("initial mirror = %f, want 75", got)
	}

	if err := ctrl.SetParamPlain(fl3ngr.ParamMidFreq, 2000); err != nil {
		t.Fatal(err)
	}
	if got := adapter.Value(int(fl3ngr.ParamMidFreq)); math.Abs(got-2000) > 1e-6 {
		t.Errorf("mirror after host change = %f, want 2000", got)
	}

	adapter.Begin(int(fl3ngr.ParamLow))
	adapter.Change(int(fl3ngr.ParamLow), -6)
	adapter.End()

	got, err := ctrl.GetParamPlain(fl3ngr.ParamLow)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got+6) > 1e-9 {
		t.Errorf("controller value = %f, want -6", got)
	}
	if ctrl.IsEditing(fl3ngr.ParamLow) {
		t.Error("gesture left the controller editing")
	}
}

func TestEditorRangesPersistInState(t *testing.T) {
	ctrl := newTestController()
	adapter := NewEditor(ctrl, editor.EndEditAll)
	adapter.ToggleRange(fl3ngr.BandHigh)
	if err := ctrl.SetParamPlain(fl3ngr.ParamHighSpeed, 0.5); err != nil {
		t.Fatal(err)
	}

	state, err := ctrl.State().Bytes()
	if err != nil {
		t.Fatal(err)
	}

	restored := newTestController()
	other := NewEditor(restored, editor.EndEditAll)
	if err := restored.Load(bytes.NewReader(state)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if other.FastRange(fl3ngr.BandHigh) {
		t.Error("high band range not restored")
	}
	if !other.FastRange(fl3ngr.BandMid) {
		t.Error("mid band range changed")
	}
	if got := other.Value(int(fl3ngr.ParamHighSpeed)); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("speed mirror = %f, want 0.5", got)
	}
}
