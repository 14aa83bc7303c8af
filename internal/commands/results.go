package benchmerge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchmerge/benchmerge/internal/render"
)

var resultsFormat string

// resultsCmd renders the wide results table to stdout.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Render the results table in a chosen format",
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

		rendered, err := p.Results(s, resultsFormat)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().StringVarP(&resultsFormat, "format", "f", render.FormatMarkdown, "output format: markdown, tsv, csv, terminal or html")
}
