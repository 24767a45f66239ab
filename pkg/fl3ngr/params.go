// Package fl3ngr implements the FL3NGR band-split flanger: its parameter
// table, DSP processor and plugin description.
package fl3ngr

import (
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
)

// Parameter indices. The numbering is part of the host contract and must not
// change.
const (
	ParamHigh uint32 = iota
	ParamHighFeedback
	ParamHighIntensity
	ParamHighMix
	ParamHighSpeed
	ParamLow
	ParamLowFeedback
	ParamLowIntensity
	ParamLowMix
	ParamLowSpeed
	ParamMid
	ParamMidFeedback
	ParamMidFreq
	ParamMidIntensity
	ParamMidMix
	ParamMidSpeed

	NumParams = 16
)

// Spec describes one host parameter.
type Spec struct {
	Index   uint32
	Name    string // symbol, e.g. "mid_freq"
	Title   string
	Min     float64
	Max     float64
	Default float64
	Unit    string
	Log     bool
	Step    float64 // drag step per pixel
}

var specs = [NumParams]Spec{
	{ParamHigh, "high", "High", -15, 15, 0, "dB", false, 0.2},
	{ParamHighFeedback, "high_feedback", "High Feedback", -100, 100, 0, "%", false, 1},
	{ParamHighIntensity, "high_intensity", "High Intensity", 0, 100, 20, "%", false, 1},
	{ParamHighMix, "high_mix", "High Mix", 0, 100, 50, "%", false, 1},
	{ParamHighSpeed, "high_speed", "High Speed", 0, 20, 2, "Hz", false, 0.05},
	{ParamLow, "low", "Low", -15, 15, 0, "dB", false, 0.2},
	{ParamLowFeedback, "low_feedback", "Low Feedback", -100, 100, 0, "%", false, 1},
	{ParamLowIntensity, "low_intensity", "Low Intensity", 0, 100, 20, "%", false, 1},
	{ParamLowMix, "low_mix", "Low Mix", 0, 100, 50, "%", false, 1},
	{ParamLowSpeed, "low_speed", "Low Speed", 0, 20, 2, "Hz", false, 0.05},
	{ParamMid, "mid", "Mid", -15, 15, 0, "dB", false, 0.2},
	{ParamMidFeedback, "mid_feedback", "Mid Feedback", -100, 100, 0, "%", false, 1},
	{ParamMidFreq, "mid_freq", "Mid Freq", 313.3, 5705.6, 1337, "Hz", true, 50},
	{ParamMidIntensity, "mid_intensity", "Mid Intensity", 0, 100, 20, "%", false, 1},
	{ParamMidMix, "mid_mix", "Mid Mix", 0, 100, 50, "%", false, 1},
	{ParamMidSpeed, "mid_speed", "Mid Speed", 0, 20, 2, "Hz", false, 0.05},
}

// Specs returns the parameter table in index order.
func Specs() []Spec {
	out := make([]Spec, NumParams)
	copy(out, specs[:])
	return out
}

// SpecAt returns the spec for an index. ok is false outside 0-15.
func SpecAt(index int) (Spec, bool) {
	if index < 0 || index >= NumParams {
		return Spec{}, false
	}
	return specs[index], true
}

// SpecByName looks a parameter up by its symbol.
func SpecByName(name string) (Spec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Clamp limits v to the parameter range.
func (s Spec) Clamp(v float64) float64 {
	return max(s.Min, min(s.Max, v))
}

func (s Spec) display() param.Display {
	switch s.Unit {
	case "dB":
		return param.Decibels
	case "%":
		return param.Percent
	default:
		return param.Hertz
	}
}

// Format renders a plain value the way the panel shows it.
func (s Spec) Format(v float64) string {
	return s.display().Format(v)
}

// Parameter builds the framework parameter for this spec.
func (s Spec) Parameter() *param.Parameter {
	b := param.New(s.Index, s.Title).
		ShortName(s.Name).
		Range(s.Min, s.Max).
		Default(s.Default).
		Unit(s.Unit).
		Display(s.display())
	if s.Log {
		b.Logarithmic()
	}
	return b.Build()
}

// RegisterParameters adds all 16 parameters to r in index order.
func RegisterParameters(r *param.Registry) {
	for _, s := range specs {
		r.Add(s.Parameter())
	}
}

// Band identifies one of the three processing bands.
type Band int

const (
	BandHigh Band = iota
	BandMid
	BandLow

	NumBands = 3
)

// Bands lists the bands in panel order.
var Bands = [NumBands]Band{BandHigh, BandMid, BandLow}

// BandParams holds the parameter indices of one band.
type BandParams struct {
	Level     uint32
	Feedback  uint32
	Intensity uint32
	Mix       uint32
	Speed     uint32
}

// Params returns the parameter indices belonging to the band.
func (b Band) Params() BandParams {
	switch b {
	case BandHigh:
		return BandParams{ParamHigh, ParamHighFeedback, ParamHighIntensity, ParamHighMix, ParamHighSpeed}
	case BandMid:
		return BandParams{ParamMid, ParamMidFeedback, ParamMidIntensity, ParamMidMix, ParamMidSpeed}
	default:
		return BandParams{ParamLow, ParamLowFeedback, ParamLowIntensity, ParamLowMix, ParamLowSpeed}
	}
}

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "High"
	case BandMid:
		return "Mid"
	case BandLow:
		return "Low"
	}
	return "Unknown"
}
