package fl3ngr

import (
	"math"

	"github.com/justyntemme/fl3ngr/pkg/dsp/filter"
	"github.com/justyntemme/fl3ngr/pkg/dsp/gain"
	"github.com/justyntemme/fl3ngr/pkg/dsp/mix"
	"github.com/justyntemme/fl3ngr/pkg/framework/bus"
	"github.com/justyntemme/fl3ngr/pkg/framework/plugin"
	"github.com/justyntemme/fl3ngr/pkg/framework/process"
)

const (
	numChannels = 2

	// outputCeiling is the hard clip applied to the band sum.
	outputCeiling = 4
)

// Processor splits the input into three bands around Mid Freq, runs each band
// through its own level stage and flanger and sums the bands back together.
type Processor struct {
	*plugin.BaseProcessor

	crossover *filter.Crossover
	bands     [NumBands]*band

	// scratch, sized at Initialize
	bandBufs [NumBands][]float32
	levels   [NumBands][]float32
	sumViews [][]float32
}

// NewProcessor creates a processor with all 16 parameters registered.
func NewProcessor() *Processor {
	p := &Processor{
		BaseProcessor: plugin.NewBaseProcessor(bus.NewStereoConfiguration()),
		sumViews:      make([][]float32, NumBands),
	}
	RegisterParameters(p.GetParameters())
	p.OnInitialize(p.setup)
	p.OnReset(p.reset)
	return p
}

func (p *Processor) setup(sampleRate float64, maxBlockSize int32) error {
	p.crossover = filter.NewCrossover(sampleRate, numChannels)
	for i, b := range Bands {
		p.bands[i] = newBand(b, sampleRate)
		p.bandBufs[i] = make([]float32, maxBlockSize)
		p.levels[i] = make([]float32, maxBlockSize)
	}
	return nil
}

func (p *Processor) reset() {
	if p.crossover == nil {
		return
	}
	p.crossover.Reset()
	for _, bd := range p.bands {
		bd.reset()
	}
}

// ProcessAudio processes one block. It does not allocate.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	n := ctx.NumSamples()
	if n == 0 {
		return
	}
	if p.crossover == nil {
		ctx.PassThrough()
		return
	}
	n = min(n, len(p.bandBufs[0]))

	p.crossover.SetCenter(ctx.ParamPlain(ParamMidFreq))
	for i, bd := range p.bands {
		bd.update(ctx)
		bd.gains(p.levels[i][:n])
	}

	low := p.bandBufs[BandLow][:n]
	mid := p.bandBufs[BandMid][:n]
	high := p.bandBufs[BandHigh][:n]

	ctx.ProcessStereo(func(ch int, input, output []float32) {
		p.crossover.Split(ch, input[:n], low, mid, high)
		for i, bd := range p.bands {
			bd.process(ch, p.bandBufs[i][:n], p.levels[i][:n])
			p.sumViews[i] = p.bandBufs[i][:n]
		}
		mix.Sum(output[:n], p.sumViews...)
		gain.ClipBuffer(output[:n], outputCeiling)
	})
}

// GetTailSamples reports the longest flanger delay in samples.
func (p *Processor) GetTailSamples() int32 {
	return int32(math.Ceil(maxDelayMs * p.SampleRate() / 1000.0))
}
