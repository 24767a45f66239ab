package host

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/faiface/beep"

	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

const (
	bytesPerFrame = numChannels * 4 // float32 LE
	playerBuffer  = 40 * time.Millisecond
	resampleQual  = 4
)

// Engine streams a looping source through the processor and serves the
// result as interleaved float32 little-endian stereo, the format an oto
// player reads.
type Engine struct {
	sampleRate int
	runner     *blockRunner
	log        *debug.Logger

	// source is swapped by the UI goroutine and read by the audio goroutine
	srcMu  sync.Mutex
	source beep.Streamer
	closer io.Closer
	name   string

	frames [][2]float64

	ctlMu  sync.Mutex
	otoCtx *oto.Context
	player *oto.Player
}

// NewEngine initializes proc for the given sample rate and block size.
func NewEngine(proc plugin.Processor, sampleRate, blockSize int) (*Engine, error) {
	if sampleRate <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("invalid engine format: %d Hz, %d frames", sampleRate, blockSize)
	}
	runner, err := newBlockRunner(proc, float64(sampleRate), blockSize)
	if err != nil {
		return nil, fmt.Errorf("initialize processor: %w", err)
	}
	return &Engine{
		sampleRate: sampleRate,
		runner:     runner,
		log:        debug.Default().With("engine"),
		frames:     make([][2]float64, blockSize),
	}, nil
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *debug.Logger) {
	e.log = l
}

// SampleRate returns the output sample rate.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Meter returns the processing load meter.
func (e *Engine) Meter() *debug.BlockMeter {
	return e.runner.meter
}

// Load decodes an audio file and loops it as the engine's source.
func (e *Engine) Load(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}
	var src beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != beep.SampleRate(e.sampleRate) {
		src = beep.Resample(resampleQual, format.SampleRate, beep.SampleRate(e.sampleRate), src)
	}
	e.setSource(src, streamer, filepath.Base(path))
	e.log.Info("playing %s (%d Hz, %d ch)", filepath.Base(path), format.SampleRate, format.NumChannels)
	return nil
}

// SetStreamer plays s, which must already run at the engine's sample rate.
// The engine outputs silence once s is drained.
func (e *Engine) SetStreamer(s beep.Streamer, name string) {
	e.setSource(s, nil, name)
}

func (e *Engine) setSource(s beep.Streamer, closer io.Closer, name string) {
	e.srcMu.Lock()
	old := e.closer
	e.source, e.closer, e.name = s, closer, name
	e.srcMu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			e.log.Warn("close previous source: %v", err)
		}
	}
}

// Read implements io.Reader. It always fills p; without a source the
// processor runs on silence so its tail decays.
func (e *Engine) Read(p []byte) (int, error) {
	total := len(p) / bytesPerFrame
	out := p
	for total > 0 {
		n := min(total, len(e.frames))
		frames := e.frames[:n]
		e.pull(frames)
		e.runner.process(frames)

		for _, f := range frames {
			binary.LittleEndian.PutUint32(out[0:], math.Float32bits(float32(f[0])))
			binary.LittleEndian.PutUint32(out[4:], math.Float32bits(float32(f[1])))
			out = out[bytesPerFrame:]
		}
		total -= n
	}
	clear(out)
	return len(p), nil
}

func (e *Engine) pull(frames [][2]float64) {
	e.srcMu.Lock()
	defer e.srcMu.Unlock()

	filled := 0
	if e.source != nil {
		for filled < len(frames) {
			n, ok := e.source.Stream(frames[filled:])
			filled += n
			if !ok {
				e.source = nil
				break
			}
		}
	}
	clear(frames[filled:])
}

// Start opens the audio device and begins playback.
func (e *Engine) Start() error {
	e.ctlMu.Lock()
	defer e.ctlMu.Unlock()
	if e.player != nil {
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   e.sampleRate,
		ChannelCount: numChannels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   playerBuffer,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	e.otoCtx = ctx
	e.player = ctx.NewPlayer(e)
	e.player.Play()
	e.log.Debug("audio started at %d Hz", e.sampleRate)
	return nil
}

// Status is a one-line summary of the source and processing load.
func (e *Engine) Status() string {
	e.srcMu.Lock()
	name := e.name
	e.srcMu.Unlock()
	if name == "" {
		name = "no file (press O to open)"
	}
	return fmt.Sprintf("%s  load=%.1f%%", name, e.runner.meter.Load())
}

// Close stops playback, releases the source and deactivates the processor.
func (e *Engine) Close() error {
	e.ctlMu.Lock()
	if e.player != nil {
		if err := e.player.Close(); err != nil {
			e.log.Warn("close player: %v", err)
		}
		e.player = nil
	}
	e.ctlMu.Unlock()

	e.setSource(nil, nil, "")
	e.log.Debug("engine closed: %s", e.runner.meter.Report())
	return e.runner.close()
}
