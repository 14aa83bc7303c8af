package benchmerge

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogLimit int

// catalogCmd groups catalog inspection subcommands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the published-artifact catalog",
}

// catalogListCmd lists the most recently published artifacts.
var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published artifacts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		artifacts, err := p.Catalog().ListArtifacts(scenarioName, catalogLimit)
		if err != nil {
			return err
		}
		if len(artifacts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No artifacts recorded yet.")
			return nil
		}
		for _, a := range artifacts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %-10s %6d rows  %s  %s\n",
				a.CreatedAt.Format("2006-01-02 15:04:05"), a.Scenario, a.Stage, a.Rows, a.SHA256[:12], a.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().IntVar(&catalogLimit, "limit", 20, "maximum number of artifacts to list")
}
