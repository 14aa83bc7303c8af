package benchmerge

import (
	"github.com/spf13/cobra"

	"github.com/benchmerge/benchmerge/internal/browse"
)

// browseCmd opens the interactive results viewer.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the results table interactively",
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

		pivot, err := p.WideTable(s)
		if err != nil {
			return err
		}
		return browse.Run(pivot, s.Enumeration.Scenario+" results")
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
