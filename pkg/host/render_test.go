package host

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
)

func TestRenderAppendsTail(t *testing.T) {
	in := writeTone(t, 44100, 1000)
	out := filepath.Join(t.TempDir(), "out.wav")

	stats, err := Render(context.Background(), fl3ngr.NewProcessor(), in, out, 256)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantTail := int(math.Ceil(9 * 44100 / 1000.0))
	if stats.Tail != wantTail {
		t.Errorf("tail = %d, want %d", stats.Tail, wantTail)
	}
	if stats.Frames != 1000+wantTail {
		t.Errorf("frames = %d, want %d", stats.Frames, 1000+wantTail)
	}
	if stats.Level.Samples != 2*stats.Frames {
		t.Errorf("measured %d samples, want %d", stats.Level.Samples, 2*stats.Frames)
	}
	if stats.Level.NaNCount != 0 || stats.Level.Peak == 0 {
		t.Errorf("output level = %s", stats.Level.String())
	}
	if stats.SampleRate != 44100 {
		t.Errorf("sample rate = %d", stats.SampleRate)
	}

	s, format, err := Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	defer s.Close()
	if s.Len() != stats.Frames {
		t.Errorf("output has %d frames, want %d", s.Len(), stats.Frames)
	}
	if format.NumChannels != 2 || format.Precision != 2 || format.SampleRate != 44100 {
		t.Errorf("output format = %+v", format)
	}
}

func TestRenderCanceled(t *testing.T) {
	in := writeTone(t, 44100, 1000)
	out := filepath.Join(t.TempDir(), "out.wav")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, fl3ngr.NewProcessor(), in, out, 256)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("partial output left behind: %v", err)
	}
}

func TestRenderMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	if _, err := Render(context.Background(), fl3ngr.NewProcessor(), "missing.wav", out, 256); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Render(context.Background(), fl3ngr.NewProcessor(), "in.aiff", out, 256); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
