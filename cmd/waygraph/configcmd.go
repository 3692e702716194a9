package main

import (
	"github.com/hupe1980/waygraph/config"
	"github.com/hupe1980/waygraph/internal/ui"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init [PATH]",
			Short: "Write the default configuration (.toml or .yaml)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := "waygraph.toml"
				if len(args) == 1 {
					path = args[0]
				}
				if err := config.Save(config.Default(), path); err != nil {
					return err
				}
				ui.Good.Fprintf(cmd.OutOrStdout(), "  Wrote %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				ui.Banner(w, "configuration")
				ui.KeyValue(w, "Snap radius", cfg.Editor.SnapRadius)
				ui.KeyValue(w, "Max segment", cfg.Editor.MaxSegmentLength)
				ui.KeyValue(w, "Dedup epsilon", cfg.Editor.DedupEpsilon)
				ui.KeyValue(w, "History limit", cfg.History.Limit)
				ui.KeyValue(w, "Compression", cfg.History.Compression)
				ui.KeyValue(w, "Log level", cfg.Log.Level)
				return nil
			},
		},
	)
	return cmd
}
