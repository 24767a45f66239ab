package main

import (
	"bytes"
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/justyntemme/fl3ngr/pkg/host"
	"github.com/justyntemme/fl3ngr/pkg/preset"
)

var (
	previewInput  string
	previewPreset string
	previewSave   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open the control panel and play a looping file",
	Long: `Open the FL3NGR panel and play an audio file in a loop through the
effect. Press O in the window to open another file.

Examples:
  fl3ngr preview -i loop.wav
  fl3ngr preview -i loop.wav --preset "slow mids" --save`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewInput, "input", "i", "", "Audio file to loop (wav, mp3, flac)")
	previewCmd.Flags().StringVar(&previewPreset, "preset", "", "Preset to start from")
	previewCmd.Flags().BoolVar(&previewSave, "save", false, "Save the panel state to --preset when the window closes")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if previewSave && previewPreset == "" {
		return errors.New("--save needs --preset")
	}

	proc, ctrl, err := newSession()
	if err != nil {
		return err
	}

	engine, err := host.NewEngine(proc, cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return err
	}
	engine.SetLogger(log.With("engine"))

	opts := host.PreviewOptions{
		Engine:     engine,
		Controller: ctrl,
		Policy:     cfg.EndEdit,
		File:       previewInput,
	}

	if previewPreset != "" {
		state, err := presetState(cmd.Context(), previewPreset)
		if err != nil {
			return err
		}
		opts.State = state
	}
	if previewSave {
		name := previewPreset
		opts.Persist = func(state []byte) error {
			store, err := openStore(context.Background())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Save(context.Background(), name, state); err != nil {
				return err
			}
			log.Info("saved preset %q", name)
			return nil
		}
	}

	return host.Preview(cmd.Context(), opts)
}

// presetState returns a preset's state, or nil for a preset that does not
// exist yet so --save can create it.
func presetState(ctx context.Context, name string) ([]byte, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	p, err := store.Load(ctx, name)
	if errors.Is(err, preset.ErrNotFound) && previewSave {
		log.Info("preset %q does not exist yet, starting from defaults", name)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bytes.Clone(p.State), nil
}
