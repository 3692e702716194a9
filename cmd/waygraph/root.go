package main

import (
	"log/slog"

	"github.com/hupe1980/waygraph"
	"github.com/hupe1980/waygraph/config"
	"github.com/hupe1980/waygraph/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waygraph",
		Short: "waygraph — author waypoint graphs from curves",
		Long: ui.Brand.Sprint("waygraph") + " — author waypoint graphs from curves\n" +
			ui.Subtle.Sprint("Draw scenes of lines, Bezier curves and splines into a routing graph"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("waygraph {{ .Version }}\n")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.toml, .yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log editor operations to stderr")

	cmd.AddCommand(
		drawCmd(),
		statsCmd(),
		dedupCmd(),
		nearestCmd(),
		dumpCmd(),
		configCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		ui.Bad.Fprintf(cmd.ErrOrStderr(), "waygraph: %v\n", err)
	}
	return err
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func editorOptions(cfg *config.Config) []waygraph.Option {
	opts := []waygraph.Option{waygraph.WithConfig(cfg)}
	if verbose {
		opts = append(opts, waygraph.WithLogger(waygraph.NewTextLogger(slog.LevelDebug)))
	}
	return opts
}
