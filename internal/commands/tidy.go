package benchmerge

import (
	"github.com/spf13/cobra"
)

// tidyCmd builds and publishes the canonical long score table.
var tidyCmd = &cobra.Command{
	Use:   "tidy",
	Short: "Consolidate per-run metric artifacts into the long score table",
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

		_, err = p.Tidy(s)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tidyCmd)
}
