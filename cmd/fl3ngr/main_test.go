package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("fl3ngr %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestParamsCommand(t *testing.T) {
	out := execute(t, "params", "--log-level", "off")

	for _, want := range []string{"WSTD FL3NGR", "mid_freq", "1337.0Hz", "high_feedback", "-100%", "log", "2 in / 2 out"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPresetCommands(t *testing.T) {
	t.Setenv("FL3NGR_PRESET_DB", filepath.Join(t.TempDir(), "presets.db"))
	t.Setenv("FL3NGR_LOG_LEVEL", "off")
	t.Cleanup(func() { presetSets = nil })

	execute(t, "preset", "save", "slow mids", "--set", "mid_speed=0.3Hz", "--set", "mid_freq=1.5kHz")

	out := execute(t, "preset", "list")
	if !strings.Contains(out, "slow mids") {
		t.Errorf("list output:\n%s", out)
	}

	out = execute(t, "preset", "load", "slow mids")
	for _, want := range []string{"0.3Hz", "1500.0Hz", "high_mix"} {
		if !strings.Contains(out, want) {
			t.Errorf("load output missing %q:\n%s", want, out)
		}
	}

	execute(t, "preset", "delete", "slow mids")
	out = execute(t, "preset", "list")
	if !strings.Contains(out, "no presets") {
		t.Errorf("list after delete:\n%s", out)
	}
}

func TestFlagOverridesInvalidEnv(t *testing.T) {
	t.Setenv("FL3NGR_SAMPLE_RATE", "0")
	t.Cleanup(func() {
		f := rootCmd.PersistentFlags().Lookup("sample-rate")
		_ = f.Value.Set("0")
		f.Changed = false
	})

	out := execute(t, "params", "--log-level", "off", "--sample-rate", "48000")
	if !strings.Contains(out, "mid_freq") {
		t.Errorf("params output:\n%s", out)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("sample rate = %d, want 48000", cfg.SampleRate)
	}
}
