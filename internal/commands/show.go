package benchmerge

import (
	"github.com/spf13/cobra"
)

// showCmd groups read-only display subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved application state",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
