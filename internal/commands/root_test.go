// internal/commands/root_test.go
package benchmerge

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"nonexistent"})
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"benchmerge\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

// TestCollectCommandData verifies the command walker flattens the tree with
// every registered stage present.
func TestCollectCommandData(t *testing.T) {
	data := collectCommandData(rootCmd, "", "")

	paths := make([]string, 0, len(data))
	for _, d := range data {
		paths = append(paths, strings.TrimSpace(d.Path))
	}
	joined := strings.Join(paths, "\n")

	for _, want := range []string{
		"benchmerge tidy",
		"benchmerge pivot",
		"benchmerge results",
		"benchmerge composite",
		"benchmerge embeddings consolidate",
		"benchmerge embeddings join",
		"benchmerge chart bar",
		"benchmerge chart composite",
		"benchmerge chart projection",
		"benchmerge browse",
		"benchmerge catalog list",
		"benchmerge run",
		"benchmerge show config",
		"benchmerge select-best",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected command %q in tree, got:\n%s", want, joined)
		}
	}
}

// TestListCommandsOutput verifies the two-column layout.
func TestListCommandsOutput(t *testing.T) {
	b := new(bytes.Buffer)
	ListCommands(b, []CommandInfo{
		{Path: "benchmerge tidy", Description: "Consolidate"},
		{Path: "benchmerge pivot", Description: "Pivot"},
	})
	out := b.String()
	if !strings.Contains(out, "Commands and Subcommands:") {
		t.Fatalf("missing header in output: %s", out)
	}
	if !strings.Contains(out, "benchmerge tidy") || !strings.Contains(out, "Consolidate") {
		t.Fatalf("missing rows in output: %s", out)
	}
}
