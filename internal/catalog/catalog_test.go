// internal/catalog/catalog_test.go
package catalog

import (
	"path/filepath"
	"testing"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBeginRunAndRecordArtifact(t *testing.T) {
	c := openTestCatalog(t)

	run, err := c.BeginRun("crispr")
	if err != nil {
		t.Fatalf("BeginRun error: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected a run ID")
	}
	if run.Scenario != "crispr" {
		t.Fatalf("unexpected scenario %q", run.Scenario)
	}

	if err := c.RecordArtifact(run.ID, "tidy", "out/scores.csv", "abc123", 40); err != nil {
		t.Fatalf("RecordArtifact error: %v", err)
	}
	if err := c.RecordArtifact(run.ID, "pivot", "out/pivot.csv", "def456", 8); err != nil {
		t.Fatalf("RecordArtifact error: %v", err)
	}

	artifacts, err := c.ListArtifacts("", 10)
	if err != nil {
		t.Fatalf("ListArtifacts error: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}
	// Newest first.
	if artifacts[0].Stage != "pivot" || artifacts[1].Stage != "tidy" {
		t.Fatalf("unexpected ordering: %q, %q", artifacts[0].Stage, artifacts[1].Stage)
	}
	if artifacts[1].Rows != 40 {
		t.Fatalf("expected row count 40, got %d", artifacts[1].Rows)
	}
	if artifacts[0].Scenario != "crispr" {
		t.Fatalf("unexpected scenario %q", artifacts[0].Scenario)
	}
}

func TestListArtifactsByScenario(t *testing.T) {
	c := openTestCatalog(t)

	runA, err := c.BeginRun("crispr")
	if err != nil {
		t.Fatalf("BeginRun error: %v", err)
	}
	runB, err := c.BeginRun("orf")
	if err != nil {
		t.Fatalf("BeginRun error: %v", err)
	}
	if runA.ID == runB.ID {
		t.Fatal("expected distinct run IDs")
	}

	if err := c.RecordArtifact(runA.ID, "tidy", "crispr/scores.csv", "aaa", 4); err != nil {
		t.Fatalf("RecordArtifact error: %v", err)
	}
	if err := c.RecordArtifact(runB.ID, "tidy", "orf/scores.csv", "bbb", 6); err != nil {
		t.Fatalf("RecordArtifact error: %v", err)
	}

	artifacts, err := c.ListArtifacts("orf", 10)
	if err != nil {
		t.Fatalf("ListArtifacts error: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(artifacts))
	}
	if artifacts[0].Path != "orf/scores.csv" {
		t.Fatalf("unexpected path %q", artifacts[0].Path)
	}
}

func TestOpenUnusableDatabasePath(t *testing.T) {
	// a directory is not a database file, so the first pragma fails
	c, err := Open(t.TempDir())
	if err == nil {
		c.Close()
		t.Fatal("expected an error opening a directory as the catalog database")
	}
}
