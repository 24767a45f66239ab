package host

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

// RenderStats describes a finished offline render.
type RenderStats struct {
	SampleRate int
	Frames     int // including the tail
	Tail       int
	Load       string
	Level      debug.LevelStats
}

// renderStreamer processes its source and appends the processor tail once
// the source is drained.
type renderStreamer struct {
	ctx    context.Context
	src    beep.Streamer
	runner *blockRunner

	tail   int
	frames int
	err    error
}

func (s *renderStreamer) Stream(samples [][2]float64) (int, bool) {
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return 0, false
	}

	n := 0
	if s.src != nil {
		var ok bool
		n, ok = s.src.Stream(samples)
		if !ok {
			if err := s.src.Err(); err != nil {
				s.err = err
				return 0, false
			}
			s.src = nil
		}
	}
	for n < len(samples) && s.src == nil && s.tail > 0 {
		samples[n] = [2]float64{}
		n++
		s.tail--
	}
	if n == 0 {
		return 0, false
	}

	s.runner.process(samples[:n])
	s.frames += n
	return n, true
}

func (s *renderStreamer) Err() error {
	return s.err
}

// Render processes the audio file at inPath with proc and writes a 16-bit
// stereo WAV to outPath at the input's sample rate. The processor keeps the
// parameter values it was configured with. A canceled ctx stops the render
// between blocks and removes the partial output.
func Render(ctx context.Context, proc plugin.Processor, inPath, outPath string, blockSize int) (RenderStats, error) {
	src, format, err := Decode(inPath)
	if err != nil {
		return RenderStats{}, err
	}
	defer src.Close()

	runner, err := newBlockRunner(proc, float64(format.SampleRate), blockSize)
	if err != nil {
		return RenderStats{}, fmt.Errorf("initialize processor: %w", err)
	}
	defer runner.close()
	var level debug.LevelStats
	runner.level = &level

	stream := &renderStreamer{
		ctx:    ctx,
		src:    src,
		runner: runner,
		tail:   int(proc.GetTailSamples()),
	}

	out, err := os.Create(outPath)
	if err != nil {
		return RenderStats{}, err
	}

	outFormat := beep.Format{
		SampleRate:  format.SampleRate,
		NumChannels: numChannels,
		Precision:   2,
	}
	err = wav.Encode(out, stream, outFormat)
	if err == nil {
		err = stream.Err()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(outPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			debug.Warn("remove partial render %s: %v", outPath, rerr)
		}
		return RenderStats{}, fmt.Errorf("render %s: %w", outPath, err)
	}

	return RenderStats{
		SampleRate: int(format.SampleRate),
		Frames:     stream.frames,
		Tail:       int(proc.GetTailSamples()),
		Load:       runner.meter.Report(),
		Level:      level,
	}, nil
}
