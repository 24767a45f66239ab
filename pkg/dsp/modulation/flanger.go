package modulation

import (
	"math"

	"github.com/justyntemme/fl3ngr/pkg/dsp/mix"
)

// MaxFeedback bounds the feedback gain in both polarities.
const MaxFeedback = 0.99

// Flanger is a mono modulated delay with feedback. The delay is swept by a
// triangle LFO around a center delay; times are kept in samples. The delay
// line is sized at construction so setters never allocate.
type Flanger struct {
	sampleRate float64
	lfo        *LFO

	center   float64 // samples
	depth    float64 // samples
	limit    float64 // samples, maxDelayMs
	feedback float32
	wet      float32

	line []float32
	head int
	last float32 // previous delayed sample, fed back on the next write
}

// NewFlanger creates a flanger whose center delay and depth may each reach
// maxDelayMs. It starts at 5 ms center, 2 ms depth, 0.5 Hz and half wet.
func NewFlanger(sampleRate, maxDelayMs float64) *Flanger {
	f := &Flanger{
		sampleRate: sampleRate,
		lfo:        NewLFO(sampleRate),
		limit:      maxDelayMs * sampleRate / 1000,
		wet:        0.5,
		// two samples of headroom for the interpolation tap
		line: make([]float32, int(math.Ceil(maxDelayMs*sampleRate/1000))+2),
	}
	f.lfo.SetShape(Triangle)
	f.lfo.SetFrequency(0.5)
	f.SetDelay(5)
	f.SetDepth(2)
	return f
}

func (f *Flanger) samples(ms float64) float64 {
	return max(0, min(f.limit, ms*f.sampleRate/1000))
}

// SetRate sets the sweep rate in Hz; 0 freezes the sweep.
func (f *Flanger) SetRate(hz float64) {
	f.lfo.SetFrequency(hz)
}

// SetDepth sets the sweep depth, in ms either side of the center delay.
func (f *Flanger) SetDepth(ms float64) {
	f.depth = f.samples(ms)
}

// SetDelay sets the center delay in ms.
func (f *Flanger) SetDelay(ms float64) {
	f.center = f.samples(ms)
}

// SetFeedback sets the feedback gain; negative values invert the echo.
func (f *Flanger) SetFeedback(g float64) {
	f.feedback = float32(max(-MaxFeedback, min(MaxFeedback, g)))
}

// SetMix sets the wet share, 0 (dry) to 1 (wet).
func (f *Flanger) SetMix(wet float64) {
	f.wet = float32(max(0, min(1, wet)))
}

// SetPhase offsets the sweep (0-1), e.g. 0.25 for the right channel of a
// stereo pair.
func (f *Flanger) SetPhase(phase float64) {
	f.lfo.SetPhase(phase)
}

// Process runs one sample.
func (f *Flanger) Process(x float32) float32 {
	size := len(f.line)

	// clamp the write so runaway feedback stays bounded
	f.line[f.head] = max(-1, min(1, x+f.last*f.feedback))

	d := f.center + f.depth*f.lfo.Next()
	d = max(1, min(float64(size-2), d))

	pos := float64(f.head) - d
	if pos < 0 {
		pos += float64(size)
	}
	i := int(pos)
	frac := float32(pos - float64(i))
	a, b := f.line[i%size], f.line[(i+1)%size]
	delayed := a + (b-a)*frac

	f.last = delayed
	f.head++
	if f.head == size {
		f.head = 0
	}
	return mix.Crossfade(x, delayed, f.wet)
}

// ProcessBuffer runs in through the flanger into out; they may alias.
func (f *Flanger) ProcessBuffer(in, out []float32) {
	for i, x := range in {
		out[i] = f.Process(x)
	}
}

// Reset clears the delay line and rewinds the sweep.
func (f *Flanger) Reset() {
	clear(f.line)
	f.head = 0
	f.last = 0
	f.lfo.Reset()
}
