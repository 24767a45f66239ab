package view

import (
	"bytes"
	"math"
	"testing"

	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
)

type fakeInput struct {
	x, y         int
	pressed      bool
	justPressed  bool
	justReleased bool
	open         bool
}

func (f *fakeInput) CursorPosition() (int, int) { return f.x, f.y }
func (f *fakeInput) MouseJustPressed() bool     { return f.justPressed }
func (f *fakeInput) MousePressed() bool         { return f.pressed }
func (f *fakeInput) MouseJustReleased() bool    { return f.justReleased }
func (f *fakeInput) OpenJustPressed() bool      { return f.open }

type recordingHost struct {
	begins, sets, ends []uint32
	values             []float64
}

func (h *recordingHost) BeginEdit(id uint32) error {
	h.begins = append(h.begins, id)
	return nil
}

func (h *recordingHost) SetValue(id uint32, v float64) error {
	h.sets = append(h.sets, id)
	h.values = append(h.values, v)
	return nil
}

func (h *recordingHost) EndEdit(id uint32) error {
	h.ends = append(h.ends, id)
	return nil
}

type harness struct {
	t     *testing.T
	panel *Panel
	in    *fakeInput
	host  *recordingHost
	ad    *editor.Adapter
}

func newHarness(t *testing.T, policy editor.EndEditPolicy) *harness {
	host := &recordingHost{}
	ad := editor.NewAdapter(host, policy)
	ad.SetLogger(debug.New(&bytes.Buffer{}, "test", 0))
	in := &fakeInput{}
	return &harness{t: t, panel: NewPanel(ad, in), in: in, host: host, ad: ad}
}

func (h *harness) frame() {
	h.t.Helper()
	if err := h.panel.Update(); err != nil {
		h.t.Fatalf("Update: %v", err)
	}
	h.in.justPressed = false
	h.in.justReleased = false
	h.in.open = false
}

func (h *harness) press(x, y int) {
	h.in.x, h.in.y = x, y
	h.in.pressed, h.in.justPressed = true, true
	h.frame()
}

func (h *harness) moveTo(x, y int) {
	h.in.x, h.in.y = x, y
	h.frame()
}

func (h *harness) release() {
	h.in.pressed, h.in.justReleased = false, true
	h.frame()
}

func (h *harness) knob(index uint32) *knob {
	for _, k := range h.panel.knobs {
		if k.spec.Index == index {
			return k
		}
	}
	h.t.Fatalf("no knob for parameter %d", index)
	return nil
}

func TestLayoutHasEveryParameterOnce(t *testing.T) {
	knobs := buildKnobs()
	if len(knobs) != fl3ngr.NumParams {
		t.Fatalf("%d knobs, want %d", len(knobs), fl3ngr.NumParams)
	}
	seen := map[int]bool{}
	for _, k := range knobs {
		if seen[k.index()] {
			t.Errorf("parameter %d laid out twice", k.index())
		}
		seen[k.index()] = true
		if k.x+knobRadius > Width || k.y+knobRadius > Height {
			t.Errorf("%s is off screen", k.spec.Title)
		}
		for _, other := range knobs {
			if other != k && other.contains(int(k.x), int(k.y)) {
				t.Errorf("%s overlaps %s", k.spec.Title, other.spec.Title)
			}
		}
	}
}

func TestDragSendsOneGesture(t *testing.T) {
	h := newHarness(t, editor.EndEditAll)
	k := h.knob(fl3ngr.ParamHigh)

	h.press(int(k.x), int(k.y))
	h.moveTo(int(k.x), int(k.y)-5)
	h.moveTo(int(k.x), int(k.y)-10)
	h.release()

	if len(h.host.begins) != 1 || h.host.begins[0] != fl3ngr.ParamHigh {
		t.Errorf("begins = %v", h.host.begins)
	}
	if len(h.host.sets) != 2 {
		t.Errorf("sets = %v", h.host.sets)
	}
	if len(h.host.ends) != fl3ngr.NumParams {
		t.Errorf("ends = %v", h.host.ends)
	}
	if got := h.ad.Value(int(fl3ngr.ParamHigh)); math.Abs(got-2) > 1e-9 {
		t.Errorf("High = %f after 10px drag, want 2", got)
	}
}

func TestDragClampsToRange(t *testing.T) {
	h := newHarness(t, editor.EndEditTouched)
	k := h.knob(fl3ngr.ParamHighMix)

	h.press(int(k.x), int(k.y))
	h.moveTo(int(k.x), int(k.y)-400)
	h.release()

	if got := h.ad.Value(int(fl3ngr.ParamHighMix)); got != 100 {
		t.Errorf("mix = %f, want 100", got)
	}
}

func TestLogKnobDragsInNormalizedSpace(t *testing.T) {
	h := newHarness(t, editor.EndEditTouched)
	k := h.knob(fl3ngr.ParamMidFreq)

	h.press(int(k.x), int(k.y))
	h.moveTo(int(k.x), int(k.y)+1000)
	h.release()
	if got := h.ad.Value(int(fl3ngr.ParamMidFreq)); math.Abs(got-313.3) > 1e-6 {
		t.Errorf("mid freq = %f, want 313.3", got)
	}

	start := k.mapping.Normalize(1337)
	got := k.valueAt(1337, 10, editor.FastSpeedSpan)
	want := k.mapping.Denormalize(start + 10*k.spec.Step/(k.spec.Max-k.spec.Min))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("valueAt = %f, want %f", got, want)
	}
}

func TestDoubleClickResets(t *testing.T) {
	h := newHarness(t, editor.EndEditAll)
	k := h.knob(fl3ngr.ParamLowFeedback)
	h.ad.ParameterChanged(int(fl3ngr.ParamLowFeedback), 60)

	h.press(int(k.x), int(k.y))
	h.release()
	h.frame()
	h.press(int(k.x), int(k.y))
	h.release()

	if got := h.ad.Value(int(fl3ngr.ParamLowFeedback)); got != 0 {
		t.Errorf("feedback = %f after double click, want default 0", got)
	}
	if len(h.host.sets) != 1 || h.host.values[0] != 0 {
		t.Errorf("sets = %v values = %v, want one set of the default", h.host.sets, h.host.values)
	}
}

func TestSlowPressesAreNotDoubleClicks(t *testing.T) {
	h := newHarness(t, editor.EndEditTouched)
	k := h.knob(fl3ngr.ParamMidMix)
	h.ad.ParameterChanged(int(fl3ngr.ParamMidMix), 80)

	h.press(int(k.x), int(k.y))
	h.release()
	for i := 0; i < doubleClickTicks+1; i++ {
		h.frame()
	}
	h.press(int(k.x), int(k.y))
	h.release()

	if len(h.host.sets) != 0 {
		t.Errorf("sets = %v, want none", h.host.sets)
	}
	if h.ad.Value(int(fl3ngr.ParamMidMix)) != 80 {
		t.Errorf("value changed to %f", h.ad.Value(int(fl3ngr.ParamMidMix)))
	}
}

func TestToggleSwitchesSpeedSpan(t *testing.T) {
	h := newHarness(t, editor.EndEditTouched)
	tg := h.panel.toggles[fl3ngr.BandLow]

	h.press(int(tg.x)+2, int(tg.y)+2)
	h.release()

	if h.ad.FastRange(fl3ngr.BandLow) {
		t.Fatal("low band still fast")
	}
	if len(h.host.begins)+len(h.host.sets)+len(h.host.ends) != 0 {
		t.Error("toggle produced host calls")
	}

	// slow range: 0.005 Hz per pixel, capped at the 2 Hz span
	k := h.knob(fl3ngr.ParamLowSpeed)
	h.ad.ParameterChanged(int(fl3ngr.ParamLowSpeed), 1)
	h.press(int(k.x), int(k.y))
	h.moveTo(int(k.x), int(k.y)-20)
	if got := h.ad.Value(int(fl3ngr.ParamLowSpeed)); math.Abs(got-1.1) > 1e-9 {
		t.Errorf("slow drag = %f, want 1.1", got)
	}
	h.moveTo(int(k.x), int(k.y)-1000)
	h.release()
	if got := h.ad.Value(int(fl3ngr.ParamLowSpeed)); got != editor.SlowSpeedSpan {
		t.Errorf("slow drag capped at %f, want %f", got, editor.SlowSpeedSpan)
	}
}

func TestKnobFraction(t *testing.T) {
	speed := newKnob(fl3ngr.ParamHighSpeed, fl3ngr.BandHigh, 0, 0, highColor)
	tests := []struct {
		value, span, want float64
	}{
		{2, 20, 0.1},
		{1, 2, 0.5},
		{5, 2, 1},
	}
	for _, tt := range tests {
		if got := speed.fraction(tt.value, tt.span); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("fraction(%f, %f) = %f, want %f", tt.value, tt.span, got, tt.want)
		}
	}

	fb := newKnob(fl3ngr.ParamMidFeedback, fl3ngr.BandMid, 0, 0, midColor)
	if !fb.bipolar() || fb.fraction(0, 20) != 0.5 {
		t.Error("feedback knob should be bipolar and centered at 0")
	}
}

func TestOpenShortcut(t *testing.T) {
	h := newHarness(t, editor.EndEditAll)
	opened := 0
	h.panel.OnOpen(func() { opened++ })

	h.in.open = true
	h.frame()
	h.frame()

	if opened != 1 {
		t.Errorf("open callback ran %d times", opened)
	}
}

func TestPressOutsideControlsDoesNothing(t *testing.T) {
	h := newHarness(t, editor.EndEditAll)
	h.press(2, 2)
	h.moveTo(2, 100)
	h.release()
	if len(h.host.begins)+len(h.host.sets)+len(h.host.ends) != 0 {
		t.Error("empty space produced host calls")
	}
}

func TestRepaintOnHostChange(t *testing.T) {
	h := newHarness(t, editor.EndEditAll)
	h.frame()
	h.panel.dirty = false

	h.ad.ParameterChanged(3, 10)
	h.frame()
	if !h.panel.dirty {
		t.Error("host change did not mark the panel dirty")
	}
}
