package main

import (
	"fmt"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/similarity"
	"github.com/dd0wney/cluso-simgraph/pkg/validation"
	"github.com/spf13/cobra"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check records and report the edges the filter would keep",
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
			if err := validation.ValidateRecords(records); err != nil {
				return fail(err)
			}
			g, err := graph.New(records)
			if err != nil {
				return fail(err)
			}

			opts, _ := cfg.FilterOptions()
			edges, err := similarity.NewFilter(opts, logger).Apply(g)
			if err != nil {
				return fail(err)
			}

			out := cmd.OutOrStdout()
			good.Fprintln(out, "  records are valid")
			fmt.Fprintf(out, "  %s  %d\n", brand.Sprintf("%-8s", "Nodes"), g.Len())
			fmt.Fprintf(out, "  %s  %d\n", brand.Sprintf("%-8s", "Tags"), len(g.Tags()))
			fmt.Fprintf(out, "  %s  %d\n", brand.Sprintf("%-8s", "Edges"), len(edges))
			fmt.Fprintln(out)
			for _, e := range edges {
				r := g.Resolve(e)
				fmt.Fprintf(out, "  %s %s %s\n", r.Source, subtle.Sprintf("%.3f", r.Weight), r.Target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Records file (JSON or YAML, - for stdin)")
	return cmd
}
