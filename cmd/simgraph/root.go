package main

import (
	"fmt"
	"os"

	"github.com/dd0wney/cluso-simgraph/pkg/config"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	width      float64
	height     float64
	seed       int64
	spread     string
	direction  string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "simgraph",
		Short:         "Lay out a speaker similarity network",
		Long:          brand.Sprint("simgraph") + " turns a similarity matrix into a laid-out network with tag outlines",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file (YAML or TOML)")
	pf.Float64Var(&flags.width, "width", 0, "Canvas width (overrides config)")
	pf.Float64Var(&flags.height, "height", 0, "Canvas height (overrides config)")
	pf.Int64Var(&flags.seed, "seed", 0, "Simulation seed (overrides config)")
	pf.StringVar(&flags.spread, "spread", "", "Reference spread: sample or population")
	pf.StringVar(&flags.direction, "direction", "", "Edge test: either or mutual")

	cmd.AddCommand(
		layoutCmd(flags),
		validateCmd(flags),
		viewCmd(flags),
	)

	cmd.SetVersionTemplate("simgraph {{ .Version }}\n")
	return cmd
}

// load resolves the configuration and applies flag overrides
func (f *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyEnv()
	}

	set := cmd.Flags().Changed
	if set("width") {
		cfg.Layout.Width = f.width
	}
	if set("height") {
		cfg.Layout.Height = f.height
	}
	if set("seed") {
		cfg.Layout.Seed = f.seed
	}
	if set("spread") {
		cfg.Filter.Spread = f.spread
	}
	if set("direction") {
		cfg.Filter.Direction = f.direction
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	logger := logging.NewJSONLogger(os.Stderr, cfg.Level())
	logging.SetDefaultLogger(logger)
	return logger
}

func fail(err error) error {
	bad.Fprintf(os.Stderr, "  %v\n", err)
	return fmt.Errorf("simgraph: %w", err)
}
