package benchmerge

import (
	"github.com/spf13/cobra"

	"github.com/benchmerge/benchmerge/internal/appconfig"
)

var compositeMinCVar float64

// compositeCmd computes and publishes the two-axis summary points.
var compositeCmd = &cobra.Command{
	Use:   "composite",
	Short: "Reduce the score table to two-axis composite points",
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

		_, err = p.Composite(s, minCVarThreshold(cmd, compositeMinCVar))
		return err
	},
}

// minCVarThreshold resolves the reliability threshold: the flag when set,
// otherwise the configured value, otherwise the default.
func minCVarThreshold(cmd *cobra.Command, flagValue float64) float64 {
	if cmd.Flags().Changed("min-cvar") {
		return flagValue
	}
	if cfg := GetConfig(); cfg != nil {
		return cfg.MinCVarThreshold()
	}
	return appconfig.Config{}.MinCVarThreshold()
}

func init() {
	rootCmd.AddCommand(compositeCmd)
	compositeCmd.Flags().Float64Var(&compositeMinCVar, "min-cvar", 0, "minimum coefficient of variation a composite point must reach")
}
