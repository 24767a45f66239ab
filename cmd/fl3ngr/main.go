package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justyntemme/fl3ngr/pkg/config"
	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

var (
	cfg       config.Config
	log       *debug.Logger
	logCloser io.Closer

	// global flags
	sampleRate int
	blockSize  int
	logLevel   string
	presetDB   string
	endEdit    string
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fl3ngr",
	Short: "WSTD FL3NGR band-split flanger",
	Long: `FL3NGR splits the signal into high, mid and low bands around the Mid Freq
control and runs each band through its own flanger.

Settings are read from FL3NGR_* environment variables; flags override them.`,
	Version:            "1.0.0",
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", 0, "Realtime sample rate (default from FL3NGR_SAMPLE_RATE)")
	rootCmd.PersistentFlags().IntVar(&blockSize, "block-size", 0, "Processing block size in frames (default from FL3NGR_BLOCK_SIZE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&presetDB, "preset-db", "", "Preset database path (default from FL3NGR_PRESET_DB)")
	rootCmd.PersistentFlags().StringVar(&endEdit, "end-edit", "", "Parameters ended on gesture release: all or touched")
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("sample-rate") {
		cfg.SampleRate = sampleRate
	}
	if flags.Changed("block-size") {
		cfg.BlockSize = blockSize
	}
	if flags.Changed("preset-db") {
		cfg.PresetDB = presetDB
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = debug.ParseLevel(logLevel); err != nil {
			return err
		}
	}
	if flags.Changed("end-edit") {
		if cfg.EndEdit, err = editor.ParseEndEditPolicy(endEdit); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, logCloser, err = cfg.Logger()
	if err != nil {
		return err
	}
	debug.SetDefault(log)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// newSession creates a processor and the controller owning its parameters.
func newSession() (plugin.Processor, *plugin.Controller, error) {
	p, err := plugin.Lookup(fl3ngr.PluginID)
	if err != nil {
		return nil, nil, err
	}
	proc := p.CreateProcessor()
	ctrl := plugin.NewController(proc.GetParameters())
	ctrl.SetLogger(log.With("controller"))
	return proc, ctrl, nil
}
