package benchmerge

import (
	"github.com/spf13/cobra"
)

// pivotCmd builds and publishes the wide results table.
var pivotCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Pivot the long score table into the wide results table",
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

		_, err = p.Pivot(s)
		return err
	},
}

func init() {
	rootCmd.AddCommand(pivotCmd)
}
