package benchmerge

import (
	"github.com/spf13/cobra"

	"github.com/benchmerge/benchmerge/internal/embeddings"
)

var joinPolicyToken string

// embeddingsCmd groups the embedding consolidation subcommands.
var embeddingsCmd = &cobra.Command{
	Use:   "embeddings",
	Short: "Consolidate and score-annotate per-run embedding artifacts",
}

// embeddingsConsolidateCmd builds and publishes the consolidated embeddings table.
var embeddingsConsolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Concatenate per-run embeddings into one canonical table",
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

		_, err = p.ConsolidateEmbeddings(s)
		return err
	},
}

// embeddingsJoinCmd joins consolidated embeddings with aggregate scores.
var embeddingsJoinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join consolidated embeddings with their methods' aggregate scores",
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

		_, _, err = p.JoinEmbeddings(s, policy)
		return err
	},
}

// joinPolicy resolves the join policy: the flag when set, otherwise the
// configured value, otherwise the default.
func joinPolicy(cmd *cobra.Command) (embeddings.JoinPolicy, error) {
	if cmd.Flags().Changed("join-policy") {
		return embeddings.ParseJoinPolicy(joinPolicyToken)
	}
	var token string
	if cfg := GetConfig(); cfg != nil {
		token = cfg.JoinPolicy
	}
	return embeddings.ParseJoinPolicy(token)
}

func init() {
	rootCmd.AddCommand(embeddingsCmd)
	embeddingsCmd.AddCommand(embeddingsConsolidateCmd)
	embeddingsCmd.AddCommand(embeddingsJoinCmd)
	embeddingsJoinCmd.Flags().StringVar(&joinPolicyToken, "join-policy", "", "what to do with embeddings of methods absent from the results table: keep or drop")
}
