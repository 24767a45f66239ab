// Package view draws the FL3NGR control panel with ebiten and turns pointer
// gestures into adapter calls.
package view

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
)

// doubleClickTicks is the double-click window, 300 ms at the default tick rate.
const doubleClickTicks = ebiten.DefaultTPS * 300 / 1000

type dragState struct {
	knob       *knob
	startY     int
	startValue float64
}

// Panel is an ebiten.Game rendering the 16 knobs and three range toggles from
// the adapter's mirror.
type Panel struct {
	adapter *editor.Adapter
	input   Input

	knobs   []*knob
	toggles [fl3ngr.NumBands]toggle

	tick      uint64
	drag      *dragState
	lastKnob  *knob
	lastPress uint64

	onOpen func()
	status func() string

	canvas *ebiten.Image
	dirty  bool
}

// NewPanel creates a panel driving the given adapter.
func NewPanel(adapter *editor.Adapter, input Input) *Panel {
	return &Panel{
		adapter: adapter,
		input:   input,
		knobs:   buildKnobs(),
		toggles: buildToggles(),
		dirty:   true,
	}
}

// OnOpen sets the callback for the open-file shortcut.
func (p *Panel) OnOpen(fn func()) {
	p.onOpen = fn
}

// SetStatus sets a function providing the status line drawn under the knobs.
func (p *Panel) SetStatus(fn func() string) {
	p.status = fn
}

// Update implements ebiten.Game.
func (p *Panel) Update() error {
	p.tick++
	x, y := p.input.CursorPosition()

	if p.input.OpenJustPressed() && p.onOpen != nil {
		p.onOpen()
	}
	if p.input.MouseJustPressed() {
		p.press(x, y)
	}
	if p.drag != nil && p.input.MousePressed() {
		p.dragTo(y)
	}
	if p.input.MouseJustReleased() {
		p.release()
	}

	if p.adapter.ConsumeRepaint() {
		p.dirty = true
	}
	return nil
}

func (p *Panel) press(x, y int) {
	for _, t := range p.toggles {
		if t.contains(x, y) {
			p.adapter.ToggleRange(t.band)
			return
		}
	}

	k := p.knobAt(x, y)
	if k == nil {
		return
	}
	if k == p.lastKnob && p.tick-p.lastPress <= doubleClickTicks {
		p.adapter.Reset(k.index())
		p.lastKnob = nil
	} else {
		p.adapter.Begin(k.index())
		p.lastKnob = k
		p.lastPress = p.tick
	}
	p.drag = &dragState{
		knob:       k,
		startY:     y,
		startValue: p.adapter.Value(k.index()),
	}
}

func (p *Panel) dragTo(y int) {
	dy := p.drag.startY - y
	if dy == 0 {
		return
	}
	k := p.drag.knob
	p.adapter.Change(k.index(), k.valueAt(p.drag.startValue, dy, p.adapter.SpeedSpan(k.band)))
}

func (p *Panel) release() {
	if p.drag == nil {
		return
	}
	p.drag = nil
	p.adapter.End()
	p.dirty = true
}

func (p *Panel) knobAt(x, y int) *knob {
	for _, k := range p.knobs {
		if k.contains(x, y) {
			return k
		}
	}
	return nil
}

// Draw implements ebiten.Game. The knob layer is only re-rendered when the
// mirror or the gesture state changed.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.canvas == nil {
		p.canvas = ebiten.NewImage(Width, Height)
		p.dirty = true
	}
	if p.dirty {
		p.render(p.canvas)
		p.dirty = false
	}
	screen.DrawImage(p.canvas, nil)

	if p.status != nil {
		ebitenutil.DebugPrintAt(screen, p.status(), labelX, Height-20)
	}
}

// Layout implements ebiten.Game.
func (p *Panel) Layout(_, _ int) (int, int) {
	return Width, Height
}

func (p *Panel) render(dst *ebiten.Image) {
	dst.Fill(backgroundColor)
	ebitenutil.DebugPrintAt(dst, Title, labelX, 8)

	ebitenutil.DebugPrintAt(dst, "High", labelX, highY-8)
	ebitenutil.DebugPrintAt(dst, "Mid", labelX, midY-8)
	ebitenutil.DebugPrintAt(dst, "Mid Freq", labelX, centerY-8)
	ebitenutil.DebugPrintAt(dst, "Low", labelX, lowY-8)

	for _, c := range []struct {
		text string
		x    int
	}{
		{"Intensity", intensityX},
		{"Speed", speedX},
		{"Feedback", feedbackX},
		{"Mix", mixX},
	} {
		drawCentered(dst, c.text, float64(c.x), centerY-8)
	}

	active, _ := p.adapter.Active()
	for _, k := range p.knobs {
		p.drawKnob(dst, k, k.index() == active)
	}
	for _, t := range p.toggles {
		p.drawToggle(dst, t)
	}
}

const (
	arcStart = 0.75 * math.Pi
	arcSweep = 1.5 * math.Pi
	arcSteps = 32
)

func (p *Panel) drawKnob(dst *ebiten.Image, k *knob, active bool) {
	value := p.adapter.Value(k.index())
	span := p.adapter.SpeedSpan(k.band)
	frac := k.fraction(value, span)

	x, y := float32(k.x), float32(k.y)
	vector.DrawFilledCircle(dst, x, y, knobRadius-6, bodyColor, true)
	strokeArc(dst, k.x, k.y, knobRadius-2, 0, 1, trackColor)

	from := 0.0
	if k.bipolar() {
		from = 0.5
	}
	strokeArc(dst, k.x, k.y, knobRadius-2, min(from, frac), max(from, frac), k.color)
	if active {
		vector.StrokeCircle(dst, x, y, knobRadius+2, 1, k.color, true)
	}

	a := arcStart + frac*arcSweep
	px := k.x + math.Cos(a)*(knobRadius-10)
	py := k.y + math.Sin(a)*(knobRadius-10)
	vector.StrokeLine(dst, x, y, float32(px), float32(py), 2, pointerColor, true)

	drawCentered(dst, k.spec.Title, k.x, int(k.y)-knobRadius-16)
	drawCentered(dst, k.spec.Format(value), k.x, int(k.y)+knobRadius)
}

func strokeArc(dst *ebiten.Image, cx, cy, r, from, to float64, clr color.Color) {
	if to <= from {
		return
	}
	steps := max(1, int(math.Ceil((to-from)*arcSteps)))
	prevX, prevY := arcPoint(cx, cy, r, from)
	for i := 1; i <= steps; i++ {
		x, y := arcPoint(cx, cy, r, from+(to-from)*float64(i)/float64(steps))
		vector.StrokeLine(dst, prevX, prevY, x, y, 3, clr, true)
		prevX, prevY = x, y
	}
}

func arcPoint(cx, cy, r, frac float64) (float32, float32) {
	a := arcStart + frac*arcSweep
	return float32(cx + math.Cos(a)*r), float32(cy + math.Sin(a)*r)
}

func (p *Panel) drawToggle(dst *ebiten.Image, t toggle) {
	label := "SLOW"
	fill := trackColor
	if p.adapter.FastRange(t.band) {
		label = "FAST"
		fill = bandColor(t.band)
	}
	x, y := float32(t.x), float32(t.y)
	vector.DrawFilledRect(dst, x, y, toggleW, toggleH, fill, false)
	vector.StrokeRect(dst, x, y, toggleW, toggleH, 1, textColor, false)
	drawCentered(dst, label, t.x+toggleW/2, int(t.y)+1)
}

func drawCentered(dst *ebiten.Image, text string, cx float64, y int) {
	ebitenutil.DebugPrintAt(dst, text, int(cx)-len(text)*charWidth/2, y)
}
