package view

import (
	"image/color"

	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
)

// Window geometry.
const (
	Width  = 640
	Height = 420
	Title  = "WSTD FL3NGR"
)

const (
	knobRadius = 28

	labelX     = 20
	levelX     = 130
	intensityX = 230
	speedX     = 330
	feedbackX  = 430
	mixX       = 530

	highY   = 80
	midY    = 170
	centerY = 260 // Mid Freq knob and column captions
	lowY    = 350

	toggleX = 576
	toggleW = 52
	toggleH = 18

	charWidth = 6 // debug font
)

var (
	backgroundColor = color.RGBA{R: 0x1c, G: 0x1c, B: 0x1f, A: 0xff}
	textColor       = color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}
	trackColor      = color.RGBA{R: 0x3a, G: 0x3a, B: 0x40, A: 0xff}
	bodyColor       = color.RGBA{R: 0x2a, G: 0x2a, B: 0x2e, A: 0xff}
	pointerColor    = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

	highColor    = color.RGBA{R: 0x3d, G: 0x9e, B: 0xd9, A: 0xff}
	midColor     = color.RGBA{R: 0xd9, G: 0xa4, B: 0x3d, A: 0xff}
	midFreqColor = color.RGBA{R: 0x9e, G: 0x6e, B: 0xd9, A: 0xff}
	lowColor     = color.RGBA{R: 0xd9, G: 0x4f, B: 0x3d, A: 0xff}
)

// knob is one rotary control bound to a parameter index.
type knob struct {
	spec  fl3ngr.Spec
	band  fl3ngr.Band
	speed bool
	x, y  float64
	color color.RGBA

	// value mapping for log knobs
	mapping *param.Parameter
}

func newKnob(index uint32, band fl3ngr.Band, x, y float64, clr color.RGBA) *knob {
	spec, _ := fl3ngr.SpecAt(int(index))
	k := &knob{
		spec:  spec,
		band:  band,
		x:     x,
		y:     y,
		color: clr,
	}
	k.speed = index == band.Params().Speed
	if spec.Log {
		k.mapping = spec.Parameter()
	}
	return k
}

func (k *knob) index() int {
	return int(k.spec.Index)
}

func (k *knob) contains(x, y int) bool {
	dx := float64(x) - k.x
	dy := float64(y) - k.y
	return dx*dx+dy*dy <= knobRadius*knobRadius
}

// valueAt returns the value after dragging dy pixels upward from start.
func (k *knob) valueAt(start float64, dy int, span float64) float64 {
	if k.mapping != nil {
		n := k.mapping.Normalize(start) + float64(dy)*k.spec.Step/(k.spec.Max-k.spec.Min)
		return k.mapping.Denormalize(n)
	}
	step, hi := k.spec.Step, k.spec.Max
	if k.speed {
		step *= span / editor.FastSpeedSpan
		if start <= span {
			hi = span
		}
	}
	return max(k.spec.Min, min(hi, start+float64(dy)*step))
}

// fraction maps a value to the 0-1 position of the knob pointer.
func (k *knob) fraction(value, span float64) float64 {
	if k.mapping != nil {
		return k.mapping.Normalize(value)
	}
	lo, hi := k.spec.Min, k.spec.Max
	if k.speed {
		hi = span
	}
	if hi <= lo {
		return 0
	}
	return max(0, min(1, (value-lo)/(hi-lo)))
}

func (k *knob) bipolar() bool {
	return k.spec.Min < 0 && k.spec.Max > 0
}

// toggle is a band's SLOW/FAST speed range switch.
type toggle struct {
	band fl3ngr.Band
	x, y float64
}

func (t toggle) contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= t.x && fx <= t.x+toggleW && fy >= t.y && fy <= t.y+toggleH
}

func bandColor(b fl3ngr.Band) color.RGBA {
	switch b {
	case fl3ngr.BandHigh:
		return highColor
	case fl3ngr.BandMid:
		return midColor
	}
	return lowColor
}

func bandRow(b fl3ngr.Band) float64 {
	switch b {
	case fl3ngr.BandHigh:
		return highY
	case fl3ngr.BandMid:
		return midY
	}
	return lowY
}

// buildKnobs lays out all 16 knobs.
func buildKnobs() []*knob {
	knobs := make([]*knob, 0, fl3ngr.NumParams)
	for _, b := range fl3ngr.Bands {
		p := b.Params()
		y := bandRow(b)
		c := bandColor(b)
		knobs = append(knobs,
			newKnob(p.Level, b, levelX, y, c),
			newKnob(p.Intensity, b, intensityX, y, c),
			newKnob(p.Speed, b, speedX, y, c),
			newKnob(p.Feedback, b, feedbackX, y, c),
			newKnob(p.Mix, b, mixX, y, c),
		)
	}
	knobs = append(knobs, newKnob(fl3ngr.ParamMidFreq, fl3ngr.BandMid, levelX, centerY, midFreqColor))
	return knobs
}

func buildToggles() [fl3ngr.NumBands]toggle {
	var t [fl3ngr.NumBands]toggle
	for i, b := range fl3ngr.Bands {
		t[i] = toggle{band: b, x: toggleX, y: bandRow(b) - toggleH/2}
	}
	return t
}
