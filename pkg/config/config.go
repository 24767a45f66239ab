// Package config loads FL3NGR settings from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
)

// Config holds the runtime settings. Command line flags override it.
type Config struct {
	SampleRate int                  `env:"FL3NGR_SAMPLE_RATE" envDefault:"48000"`
	BlockSize  int                  `env:"FL3NGR_BLOCK_SIZE" envDefault:"512"`
	LogLevel   debug.LogLevel       `env:"FL3NGR_LOG_LEVEL" envDefault:"info"`
	LogFile    string               `env:"FL3NGR_LOG_FILE"`
	PresetDB   string               `env:"FL3NGR_PRESET_DB"`
	EndEdit    editor.EndEditPolicy `env:"FL3NGR_END_EDIT" envDefault:"all"`
}

// Load parses the environment and fills derived defaults. The result is not
// validated so callers can apply overrides first.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PresetDB == "" {
		cfg.PresetDB = DefaultPresetDB()
	}
	return cfg, nil
}

// Validate checks the audio settings.
func (c Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 384000 {
		return fmt.Errorf("sample rate %d out of range 8000-384000", c.SampleRate)
	}
	if c.BlockSize < 16 || c.BlockSize > 8192 {
		return fmt.Errorf("block size %d out of range 16-8192", c.BlockSize)
	}
	return nil
}

// DefaultPresetDB returns the preset database path under the user's config
// directory, or a relative path when that directory is unknown.
func DefaultPresetDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fl3ngr-presets.db"
	}
	return filepath.Join(dir, "fl3ngr", "presets.db")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger builds the logger described by the config: stderr unless LogFile is
// set. The closer releases the log file.
func (c Config) Logger() (*debug.Logger, io.Closer, error) {
	var (
		l      *debug.Logger
		closer io.Closer = nopCloser{}
	)
	if c.LogFile != "" {
		fl, fc, err := debug.NewFileLogger(c.LogFile, "fl3ngr", debug.DefaultFlags|debug.FlagShortFile)
		if err != nil {
			return nil, nil, err
		}
		l, closer = fl, fc
	} else {
		l = debug.New(os.Stderr, "fl3ngr", debug.DefaultFlags)
	}
	l.SetLevel(c.LogLevel)
	return l, closer, nil
}
