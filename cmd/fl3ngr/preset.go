package main

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
	"github.com/justyntemme/fl3ngr/pkg/preset"
)

var presetSets []string

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved presets",
	Long: `Save, show, list and delete named presets.

Subcommands:
  save     Save the defaults plus --set overrides under a name
  load     Show the values stored in a preset
  list     List presets
  delete   Delete a preset`,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a preset",
	Long: `Save the default values with --set overrides applied.

Examples:
  fl3ngr preset save "slow mids" --set mid_speed=0.3Hz --set mid_mix=80%`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetSave,
}

var presetLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Show the values stored in a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetLoad,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetDelete,
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetLoadCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetDeleteCmd)

	presetSaveCmd.Flags().StringArrayVar(&presetSets, "set", nil, "Parameter override as symbol=value (repeatable)")
}

func openStore(ctx context.Context) (*preset.Store, error) {
	return preset.Open(ctx, cfg.PresetDB)
}

// loadPreset restores a named preset into the controller.
func loadPreset(ctx context.Context, ctrl *plugin.Controller, name string) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Load(ctx, name)
	if err != nil {
		return err
	}
	return ctrl.Load(bytes.NewReader(p.State))
}

func runPresetSave(cmd *cobra.Command, args []string) error {
	_, ctrl, err := newSession()
	if err != nil {
		return err
	}
	if err := applySets(ctrl, presetSets); err != nil {
		return err
	}
	state, err := ctrl.State().Bytes()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(cmd.Context(), args[0], state); err != nil {
		return err
	}
	log.Info("saved preset %q to %s", args[0], cfg.PresetDB)
	return nil
}

func runPresetLoad(cmd *cobra.Command, args []string) error {
	_, ctrl, err := newSession()
	if err != nil {
		return err
	}
	if err := loadPreset(cmd.Context(), ctrl, args[0]); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, s := range fl3ngr.Specs() {
		v, err := ctrl.GetParamPlain(s.Index)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Format(v))
	}
	return w.Flush()
}

func runPresetList(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	presets, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no presets")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUPDATED")
	for _, p := range presets {
		fmt.Fprintf(w, "%s\t%s\n", p.Name, p.UpdatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func runPresetDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info("deleted preset %q", args[0])
	return nil
}
