package state

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/justyntemme/fl3ngr/pkg/framework/param"
)

func newRegistry() *param.Registry {
	r := param.NewRegistry()
	r.Add(
		param.New(0, "Level").Range(-15, 15).Default(0).Build(),
		param.New(1, "Mix").Range(0, 100).Default(50).Build(),
	)
	return r
}

func TestManagerRoundTrip(t *testing.T) {
	src := newRegistry()
	src.Get(0).SetPlainValue(-6)
	src.Get(1).SetPlainValue(80)

	saved := []byte{1, 0, 1}
	m := NewManager(src)
	m.SetCustomState(func(w io.Writer) error {
		_, err := w.Write(saved)
		return err
	}, nil)

	data, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	dst := newRegistry()
	var loaded []byte
	m2 := NewManager(dst)
	m2.SetCustomState(nil, func(r io.Reader) error {
		var err error
		loaded, err = io.ReadAll(r)
		return err
	})
	if err := m2.SetBytes(data); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}

	if got := dst.Get(0).GetPlainValue(); got != -6 {
		t.Errorf("level = %f, want -6", got)
	}
	if got := dst.Get(1).GetPlainValue(); got != 80 {
		t.Errorf("mix = %f, want 80", got)
	}
	if !bytes.Equal(loaded, saved) {
		t.Errorf("custom block = %v, want %v", loaded, saved)
	}
}

func TestManagerSkipsCustomWithoutLoader(t *testing.T) {
	src := newRegistry()
	m := NewManager(src)
	m.SetCustomState(func(w io.Writer) error {
		_, err := w.Write([]byte("ignored"))
		return err
	}, nil)

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf.WriteString("trailer")

	if err := NewManager(newRegistry()).Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if buf.String() != "trailer" {
		t.Errorf("custom block not fully consumed, remaining %q", buf.String())
	}
}

func TestManagerRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", []byte("VST3GO\x01\x00\x00\x00")},
		{"short", []byte("FL3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewManager(newRegistry()).SetBytes(tt.data)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("err = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestManagerRejectsNewerVersion(t *testing.T) {
	data := append([]byte("FL3NGR"), 9, 0, 0, 0)
	if err := NewManager(newRegistry()).SetBytes(data); err == nil {
		t.Error("expected error for newer version")
	}
}

func TestManagerFailedLoadLeavesValues(t *testing.T) {
	src := newRegistry()
	src.Get(0).SetPlainValue(15)
	m := NewManager(src)
	m.SetCustomState(func(w io.Writer) error {
		_, err := w.Write([]byte{1, 1, 1})
		return err
	}, nil)
	data, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		load CustomLoadFunc
	}{
		{"custom rejected", data, func(io.Reader) error { return errors.New("rejected") }},
		{"truncated before custom block", data[:len(data)-7], nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := newRegistry()
			dst.Get(0).SetPlainValue(-15)
			mgr := NewManager(dst)
			mgr.SetCustomState(nil, tt.load)
			if err := mgr.SetBytes(tt.data); err == nil {
				t.Fatal("SetBytes succeeded, want error")
			}
			if got := dst.Get(0).GetPlainValue(); got != -15 {
				t.Errorf("level = %f, want -15", got)
			}
		})
	}
}
