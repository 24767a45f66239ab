package param

import (
	"math"
	"testing"
)

func TestParameterLinearMapping(t *testing.T) {
	p := New(0, "Level").Range(-15, 15).Default(0).Unit("dB").Build()

	if p.DefaultValue != 0.5 {
		t.Fatalf("default normalized = %f, want 0.5", p.DefaultValue)
	}
	if got := p.GetPlainValue(); got != 0 {
		t.Errorf("initial plain value = %f, want 0", got)
	}

	p.SetPlainValue(7.5)
	if got := p.GetValue(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("normalized = %f, want 0.75", got)
	}

	tests := []struct {
		plain float64
		want  float64
	}{
		{-15, 0},
		{15, 1},
		{-30, 0},
		{30, 1},
	}
	for _, tt := range tests {
		if got := p.Normalize(tt.plain); got != tt.want {
			t.Errorf("Normalize(%f) = %f, want %f", tt.plain, got, tt.want)
		}
	}
}

func TestParameterLogMapping(t *testing.T) {
	p := New(12, "Mid Freq").Range(313.3, 5705.6).Logarithmic().Default(1337).Build()

	if got := p.DefaultPlain(); math.Abs(got-1337) > 1e-9 {
		t.Errorf("default plain = %f, want 1337", got)
	}

	// geometric midpoint sits at normalized 0.5
	mid := math.Sqrt(313.3 * 5705.6)
	if got := p.Normalize(mid); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Normalize(geometric mid) = %f, want 0.5", got)
	}

	for _, n := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		plain := p.Denormalize(n)
		if back := p.Normalize(plain); math.Abs(back-n) > 1e-9 {
			t.Errorf("round trip %f -> %f -> %f", n, plain, back)
		}
	}

	if got := p.Normalize(100); got != 0 {
		t.Errorf("below range normalized = %f, want 0", got)
	}
}

func TestParameterClampsNormalized(t *testing.T) {
	p := New(1, "Mix").Range(0, 100).Default(50).Build()

	p.SetValue(1.5)
	if p.GetValue() != 1 {
		t.Errorf("SetValue(1.5) stored %f", p.GetValue())
	}
	p.SetValue(-0.5)
	if p.GetValue() != 0 {
		t.Errorf("SetValue(-0.5) stored %f", p.GetValue())
	}
	if got := p.Clamp(120); got != 100 {
		t.Errorf("Clamp(120) = %f", got)
	}
}

func TestParameterFormatting(t *testing.T) {
	tests := []struct {
		name  string
		p     *Parameter
		plain float64
		want  string
	}{
		{"decibel", New(0, "High").Range(-15, 15).Display(Decibels).Build(), -3.25, "-3.2dB"},
		{"percent", New(1, "Mix").Range(0, 100).Display(Percent).Build(), 50, "50%"},
		{"frequency", New(2, "Speed").Range(0, 20).Display(Hertz).Build(), 2, "2.0Hz"},
		{"default", New(3, "Raw").Range(0, 1).Build(), 0.25, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.FormatPlain(tt.plain); got != tt.want {
				t.Errorf("FormatPlain(%f) = %q, want %q", tt.plain, got, tt.want)
			}
		})
	}
}

func TestParameterParsing(t *testing.T) {
	freq := New(12, "Mid Freq").Range(313.3, 5705.6).Logarithmic().
		Display(Hertz).Build()

	n, err := freq.ParseValue("1.5 kHz")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if got := freq.Denormalize(n); math.Abs(got-1500) > 1e-6 {
		t.Errorf("parsed plain = %f, want 1500", got)
	}

	if _, err := freq.ParseValue("fast"); err == nil {
		t.Error("expected parse error")
	}

	pct := New(1, "Mix").Range(0, 100).Display(Percent).Build()
	n, err = pct.ParseValue(" 25% ")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if n != 0.25 {
		t.Errorf("normalized = %f, want 0.25", n)
	}
}

func TestRegistryOrderAndDefaults(t *testing.T) {
	r := NewRegistry()
	a := New(5, "A").Range(0, 10).Default(2).Build()
	b := New(1, "B").Range(0, 10).Default(8).Build()
	r.Add(a, b, New(5, "dup").Build())

	if r.Count() != 2 {
		t.Fatalf("Count = %d, want 2", r.Count())
	}
	if r.GetByIndex(0) != a || r.GetByIndex(1) != b {
		t.Error("registry did not keep insertion order")
	}
	if r.GetByIndex(2) != nil || r.GetByIndex(-1) != nil {
		t.Error("out of range index should return nil")
	}
	if r.Get(5).Name != "A" {
		t.Error("duplicate id replaced the original parameter")
	}

	a.SetPlainValue(9)
	b.SetPlainValue(0)
	r.ResetToDefaults()
	if a.GetPlainValue() != 2 || b.GetPlainValue() != 8 {
		t.Errorf("ResetToDefaults left %f, %f", a.GetPlainValue(), b.GetPlainValue())
	}
}
