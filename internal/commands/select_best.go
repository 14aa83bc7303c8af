package benchmerge

import (
	"fmt"

	"github.com/spf13/cobra"
)

// selectBestCmd picks the winning sweep variant per method.
var selectBestCmd = &cobra.Command{
	Use:   "select-best",
	Short: "Pick each method's best sweep variant by the ranking metric",
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

		selections, err := p.SelectBest(s)
		if err != nil {
			return err
		}
		for _, sel := range selections {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s = %g)\n",
				sel.Method, sel.Variant, GetConfig().SelectMetricName(), sel.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectBestCmd)
}
