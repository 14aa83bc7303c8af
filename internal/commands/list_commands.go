// internal/commands/list_commands.go
package benchmerge

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// CommandInfo is one row of the command listing: the full command path and
// its short description.
type CommandInfo struct {
	Path        string
	Description string
}

// listCmd groups listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List application entities",
}

// commandsCmd implements 'list commands', printing the command tree in a
// hierarchical two-column layout.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		commandData := collectCommandData(rootCmd, "", "")
		filtered := make([]CommandInfo, 0, len(commandData))
		for _, data := range commandData {
			if strings.Contains(data.Path, "completion") {
				continue
			}
			filtered = append(filtered, data)
		}
		ListCommands(cmd.OutOrStdout(), filtered)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData walks the command tree and flattens it into
// path/description rows, indenting each level.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []CommandInfo {
	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	rows := []CommandInfo{{Path: indent + fullPath, Description: cmd.Short}}
	for _, subCmd := range cmd.Commands() {
		rows = append(rows, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}
	return rows
}

// ListCommands prints the rows in a two-column layout, padding the path
// column to the widest entry.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, row := range commands {
		if len(row.Path) > width {
			width = len(row.Path)
		}
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, row := range commands {
		fmt.Fprintf(out, "  %-*s  %s\n", width, row.Path, row.Description)
	}
}
