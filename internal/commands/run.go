package benchmerge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchmerge/benchmerge/internal/appconfig"
	"github.com/benchmerge/benchmerge/internal/render"
)

var (
	runFormat  string
	runMinCVar float64
)

// runCmd executes the full consolidation chain. With --scenario it runs one
// scenario; otherwise every configured scenario runs, independently and in
// configuration order.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every consolidation stage for one or all scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		policy, err := joinPolicy(cmd)
		if err != nil {
			return err
		}

		scenarios := cfg.Scenarios
		if scenarioName != "" {
			s, err := currentScenario()
			if err != nil {
				return err
			}
			scenarios = []appconfig.Scenario{s}
		}

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		for _, s := range scenarios {
			if err := p.Run(s, runFormat, minCVarThreshold(cmd, runMinCVar), policy); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFormat, "format", "f", render.FormatMarkdown, "results table output format")
	runCmd.Flags().Float64Var(&runMinCVar, "min-cvar", 0, "minimum coefficient of variation a composite point must reach")
	runCmd.Flags().StringVar(&joinPolicyToken, "join-policy", "", "what to do with embeddings of methods absent from the results table: keep or drop")
}
