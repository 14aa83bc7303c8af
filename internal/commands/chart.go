package benchmerge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchmerge/benchmerge/internal/render"
)

var (
	chartBarMetrics []string
	chartMinCVar    float64
	chartColorBy    string
)

// chartCmd groups the chart renderers.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render consolidated tables as standalone HTML charts",
}

// chartBarCmd renders per-metric scores as a grouped bar chart.
var chartBarCmd = &cobra.Command{
	Use:   "bar",
	Short: "Render metric scores as a grouped bar chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentScenario()
		if err != nil {
			return err
		}
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		path, err := p.BarChart(s, chartBarMetrics)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", path)
		return nil
	},
}

// chartCompositeCmd renders the two-axis composite points as a scatter chart.
var chartCompositeCmd = &cobra.Command{
	Use:   "composite",
	Short: "Render composite points as a two-axis scatter chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentScenario()
		if err != nil {
			return err
		}
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		path, err := p.CompositeChart(s, minCVarThreshold(cmd, chartMinCVar))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", path)
		return nil
	},
}

// chartProjectionCmd renders the scored embedding projection.
var chartProjectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Render the embedding projection colored by batch or source",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentScenario()
		if err != nil {
			return err
		}
		policy, err := joinPolicy(cmd)
		if err != nil {
			return err
		}
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		path, err := p.ProjectionChart(s, chartColorBy, policy)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartBarCmd)
	chartCmd.AddCommand(chartCompositeCmd)
	chartCmd.AddCommand(chartProjectionCmd)

	chartBarCmd.Flags().StringSliceVar(&chartBarMetrics, "metrics", nil, "restrict the chart to these metrics (display only)")
	chartCompositeCmd.Flags().Float64Var(&chartMinCVar, "min-cvar", 0, "minimum coefficient of variation a composite point must reach")
	chartProjectionCmd.Flags().StringVar(&chartColorBy, "color-by", render.ColorByBatch, "point coloring: batch or source")
	chartProjectionCmd.Flags().StringVar(&joinPolicyToken, "join-policy", "", "what to do with embeddings of methods absent from the results table: keep or drop")
}
