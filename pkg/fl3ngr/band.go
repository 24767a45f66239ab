package fl3ngr

import (
	"github.com/justyntemme/fl3ngr/pkg/dsp/gain"
	"github.com/justyntemme/fl3ngr/pkg/dsp/modulation"
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
	"github.com/justyntemme/fl3ngr/pkg/framework/process"
)

const (
	// baseDelayMs is the flanger delay at zero intensity.
	baseDelayMs = 1.0
	// depthPerIntensityMs is the sweep depth at 100% intensity.
	depthPerIntensityMs = 4.0
	// maxDelayMs is the longest delay any band can reach.
	maxDelayMs = baseDelayMs + 2*depthPerIntensityMs

	levelSmoothMs  = 20.0
	rightLFOOffset = 0.25
)

// band is the per-band level stage and stereo flanger pair.
type band struct {
	params   BandParams
	level    *param.Smoother
	flangers [2]*modulation.Flanger
}

func newBand(b Band, sampleRate float64) *band {
	bd := &band{
		params: b.Params(),
		level:  param.NewSmootherForTime(sampleRate, levelSmoothMs),
	}
	for ch := range bd.flangers {
		f := modulation.NewFlanger(sampleRate, maxDelayMs)
		if ch == 1 {
			f.SetPhase(rightLFOOffset)
		}
		bd.flangers[ch] = f
	}
	bd.level.Reset(1)
	return bd
}

// update reads the band's parameters for the coming block.
func (bd *band) update(ctx *process.Context) {
	depth := ctx.ParamPlain(bd.params.Intensity) / 100.0 * depthPerIntensityMs
	feedback := ctx.ParamPlain(bd.params.Feedback) / 100.0 * modulation.MaxFeedback
	wet := ctx.ParamPlain(bd.params.Mix) / 100.0
	rate := ctx.ParamPlain(bd.params.Speed)

	for _, f := range bd.flangers {
		f.SetDepth(depth)
		f.SetDelay(baseDelayMs + depth)
		f.SetFeedback(feedback)
		f.SetMix(wet)
		f.SetRate(rate)
	}

	bd.level.SetTarget(gain.DbToLinear(ctx.ParamPlain(bd.params.Level)))
}

// gains fills dst with the smoothed linear level for each sample.
func (bd *band) gains(dst []float32) {
	for i := range dst {
		dst[i] = float32(bd.level.Next())
	}
}

// process applies the level ramp and the channel's flanger in place.
func (bd *band) process(ch int, buf, levels []float32) {
	for i := range buf {
		buf[i] *= levels[i]
	}
	bd.flangers[ch].ProcessBuffer(buf, buf)
}

func (bd *band) reset() {
	for _, f := range bd.flangers {
		f.Reset()
	}
}
