package main

import (
	"fmt"
	"os"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/dd0wney/cluso-simgraph/pkg/visualization"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func layoutCmd(flags *globalFlags) *cobra.Command {
	var (
		input       string
		output      string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Filter edges, simulate positions and outline tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return fail(err)
			}
			logger := newLogger(cfg)

			records, err := graph.ReadRecordsFile(input)
			if err != nil {
				return fail(err)
			}

			layout, _ := cfg.LayoutConfig()
			opts, _ := cfg.FilterOptions()
			reg := metrics.NewRegistry()

			engine, err := visualization.NewEngine(layout, opts, logger, reg)
			if err != nil {
				return fail(err)
			}
			viz, err := engine.Layout(records)
			if err != nil {
				return fail(err)
			}

			data, err := viz.ExportJSON()
			if err != nil {
				return fail(err)
			}

			if output == "" || output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fail(err)
				}
				good.Fprintf(os.Stderr, "  wrote %d nodes, %d edges, %d hulls to %s\n",
					len(viz.Nodes), len(viz.Edges), len(viz.Hulls), output)
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg.GetPrometheusRegistry()); err != nil {
					return fail(err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Records file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")

	return cmd
}
