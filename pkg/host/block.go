package host

import (
	"fmt"

	"github.com/justyntemme/fl3ngr/pkg/framework/bus"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/framework/process"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

const numChannels = 2

// blockRunner feeds stereo frames through a processor in blocks of at most
// the processor's maximum block size. It allocates only at construction.
type blockRunner struct {
	proc  plugin.Processor
	ctx   *process.Context
	meter *debug.BlockMeter
	// level accumulates output statistics when set
	level *debug.LevelStats

	in, out [][]float32
}

func newBlockRunner(proc plugin.Processor, sampleRate float64, blockSize int) (*blockRunner, error) {
	buses := proc.GetBuses()
	if buses.MainChannelCount(bus.Input) != numChannels || buses.MainChannelCount(bus.Output) != numChannels {
		return nil, fmt.Errorf("processor must be stereo, has %s", buses)
	}
	if err := proc.Initialize(sampleRate, int32(blockSize)); err != nil {
		return nil, err
	}
	if err := proc.SetActive(true); err != nil {
		return nil, err
	}

	ctx := process.NewContext(blockSize, proc.GetParameters())
	ctx.SampleRate = sampleRate

	r := &blockRunner{
		proc:  proc,
		ctx:   ctx,
		meter: debug.NewBlockMeter(sampleRate),
		in:    make([][]float32, numChannels),
		out:   make([][]float32, numChannels),
	}
	for ch := 0; ch < numChannels; ch++ {
		r.in[ch] = make([]float32, blockSize)
		r.out[ch] = make([]float32, blockSize)
	}
	return r, nil
}

// process runs frames through the processor in place.
func (r *blockRunner) process(frames [][2]float64) {
	blockSize := r.ctx.MaxBlockSize()
	for len(frames) > 0 {
		n := min(len(frames), blockSize)
		block := frames[:n]
		for i, f := range block {
			r.in[0][i] = float32(f[0])
			r.in[1][i] = float32(f[1])
		}

		r.ctx.Block(r.in, r.out, n)
		done := r.meter.Start(n)
		r.proc.ProcessAudio(r.ctx)
		done()
		if r.level != nil {
			r.level.Add(r.out[0][:n])
			r.level.Add(r.out[1][:n])
		}

		for i := range block {
			block[i][0] = float64(r.out[0][i])
			block[i][1] = float64(r.out[1][i])
		}
		frames = frames[n:]
	}
}

func (r *blockRunner) close() error {
	return r.proc.SetActive(false)
}

