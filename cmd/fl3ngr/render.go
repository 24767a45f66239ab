package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/fl3ngr/pkg/host"
)

var (
	renderInput  string
	renderOutput string
	renderPreset string
	renderSets   []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Process an audio file offline",
	Long: `Run an audio file (wav, mp3 or flac) through FL3NGR and write a 16-bit
stereo WAV at the input's sample rate. The flanger tail is appended.

Examples:
  fl3ngr render -i loop.wav -o out.wav
  fl3ngr render -i drums.flac -o out.wav --preset "slow mids" --set high_mix=100%`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Input audio file (wav, mp3, flac)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output WAV file")
	renderCmd.Flags().StringVar(&renderPreset, "preset", "", "Start from a saved preset")
	renderCmd.Flags().StringArrayVar(&renderSets, "set", nil, "Parameter override as symbol=value (repeatable)")
	_ = renderCmd.MarkFlagRequired("input")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, _ []string) error {
	proc, ctrl, err := newSession()
	if err != nil {
		return err
	}
	if renderPreset != "" {
		if err := loadPreset(cmd.Context(), ctrl, renderPreset); err != nil {
			return err
		}
	}
	if err := applySets(ctrl, renderSets); err != nil {
		return err
	}

	stats, err := host.Render(cmd.Context(), proc, renderInput, renderOutput, cfg.BlockSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d frames at %d Hz (tail %d)\n",
		renderOutput, stats.Frames, stats.SampleRate, stats.Tail)
	log.Debug("render %s", stats.Load)
	log.Debug("output %s", stats.Level.String())
	for _, issue := range stats.Level.Issues(renderOutput) {
		log.Warn("%s", issue)
	}
	return nil
}
