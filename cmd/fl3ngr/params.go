package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/fl3ngr/pkg/fl3ngr"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the parameter table",
	Long: `Print the 16 host parameters in index order with their range, default and
symbol. The symbol is the name used by --set.`,
	Args: cobra.NoArgs,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, _ []string) error {
	p, err := plugin.Lookup(fl3ngr.PluginID)
	if err != nil {
		return err
	}
	info := p.GetInfo()
	if err := info.ValidateUID(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s by %s (%s)\n", info.Name, info.Version, info.Vendor, info.Category)
	fmt.Fprintf(out, "class id %s\n", info.UIDString())
	fmt.Fprintf(out, "audio %s\n\n", p.CreateProcessor().GetBuses())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tSYMBOL\tTITLE\tMIN\tMAX\tDEFAULT\tSCALE")
	for _, s := range fl3ngr.Specs() {
		scale := "linear"
		if s.Log {
			scale = "log"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Index, s.Name, s.Title, s.Format(s.Min), s.Format(s.Max), s.Format(s.Default), scale)
	}
	return w.Flush()
}

// applySets applies name=value assignments. Values accept the same text the
// panel shows, such as "1.5kHz", "-3dB" or "40%".
func applySets(ctrl *plugin.Controller, sets []string) error {
	for _, kv := range sets {
		name, text, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: want name=value", kv)
		}
		spec, ok := fl3ngr.SpecByName(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("%w: %q (see fl3ngr params)", plugin.ErrUnknownParameter, name)
		}
		n, err := ctrl.GetParamValueByString(spec.Index, text)
		if err != nil {
			return err
		}
		if err := ctrl.SetParamNormalized(spec.Index, n); err != nil {
			return err
		}
		log.Debug("set %s = %s", spec.Name, text)
	}
	return nil
}
