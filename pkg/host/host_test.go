package host

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// writeTone writes a 16-bit stereo sine WAV of the given length.
func writeTone(t *testing.T, rate, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, tone(rate, frames), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

// tone streams frames of a 440 Hz sine; a negative count streams forever.
func tone(rate, frames int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := 0
		for n < len(samples) && (frames < 0 || pos < frames) {
			v := 0.5 * math.Sin(2*math.Pi*440*float64(pos)/float64(rate))
			samples[n] = [2]float64{v, v}
			n++
			pos++
		}
		return n, n > 0
	})
}
