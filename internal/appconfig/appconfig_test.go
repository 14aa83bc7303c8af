// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `{
    "scenarios": [
        {
            "scenario": "crispr",
            "workflows": ["wf_cell", "wf_well"],
            "methods": ["harmony", "mnn"],
            "baseline": "baseline",
            "metricsTemplate": "runs/{scenario}/{workflow}/{method}/metrics.csv",
            "embeddingsTemplate": "runs/{scenario}/{workflow}/{method}/embedding.csv"
        }
    ],
    "outputDir": "out",
    "minCvar": 0.02,
    "duplicatePolicy": "mean"
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad tests the Load function to ensure it correctly handles various
// scenarios, including valid and invalid configurations. It verifies that a
// valid configuration file is loaded without error, while files with invalid
// JSON, no scenarios, or that are nonexistent result in an appropriate error.
func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if len(cfg.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(cfg.Scenarios))
	}
	if cfg.OutputDirPath() != "out" {
		t.Fatalf("expected output dir %q, got %q", "out", cfg.OutputDirPath())
	}
	if cfg.MinCVarThreshold() != 0.02 {
		t.Fatalf("expected min cvar 0.02, got %g", cfg.MinCVarThreshold())
	}
	if cfg.DuplicatePolicy != "mean" {
		t.Fatalf("expected duplicate policy mean, got %q", cfg.DuplicatePolicy)
	}

	if _, err := Load(writeConfig(t, `{ "scenarios": [`)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	if _, err := Load(writeConfig(t, `{ "scenarios": [] }`)); err == nil {
		t.Fatal("Load() with no scenarios should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

// TestLoadDefaults verifies the fallbacks applied when optional fields are
// omitted from the config file.
func TestLoadDefaults(t *testing.T) {
	minimal := `{
        "scenarios": [
            {
                "scenario": "crispr",
                "workflows": ["wf_cell"],
                "methods": ["harmony"],
                "baseline": "baseline",
                "metricsTemplate": "runs/{workflow}/{method}.csv"
            }
        ]
    }`
	cfg, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.OutputDirPath() != "results" {
		t.Fatalf("expected default output dir, got %q", cfg.OutputDirPath())
	}
	if cfg.MinCVarThreshold() != 0.01 {
		t.Fatalf("expected default min cvar 0.01, got %g", cfg.MinCVarThreshold())
	}
	if cfg.LogFilePath() != "benchmerge.log" {
		t.Fatalf("expected default log file, got %q", cfg.LogFilePath())
	}
	if cfg.CatalogPath() != filepath.Join("results", "catalog.db") {
		t.Fatalf("unexpected catalog path %q", cfg.CatalogPath())
	}
	if cfg.SelectMetricName() != "mean_average_precision" {
		t.Fatalf("unexpected select metric %q", cfg.SelectMetricName())
	}
	groups := cfg.Groups()
	if groups.AxisAName != "bio_conservation" || groups.AxisBName != "batch_removal" {
		t.Fatalf("expected default axis groups, got %q/%q", groups.AxisAName, groups.AxisBName)
	}
}

// TestLoadSchemaValidation verifies shape errors are caught before unmarshal
// with field-level detail.
func TestLoadSchemaValidation(t *testing.T) {
	badPolicy := strings.Replace(validConfig, `"mean"`, `"latest"`, 1)
	if _, err := Load(writeConfig(t, badPolicy)); err == nil {
		t.Fatal("Load() with unknown duplicate policy should have failed")
	}

	noBaseline := `{
        "scenarios": [
            {
                "scenario": "crispr",
                "workflows": ["wf_cell"],
                "methods": ["harmony"],
                "metricsTemplate": "runs/{workflow}/{method}.csv"
            }
        ]
    }`
	_, err := Load(writeConfig(t, noBaseline))
	if err == nil {
		t.Fatal("Load() without baseline should have failed")
	}
	if !strings.Contains(err.Error(), "baseline") {
		t.Fatalf("expected error naming the missing field, got: %v", err)
	}
}

// TestScenarioLookup covers named lookup and the single-scenario shortcut.
func TestScenarioLookup(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	s, err := cfg.Scenario("")
	if err != nil {
		t.Fatalf("expected single-scenario shortcut, got error: %v", err)
	}
	if s.Enumeration.Scenario != "crispr" {
		t.Fatalf("unexpected scenario %q", s.Enumeration.Scenario)
	}

	if _, err := cfg.Scenario("missing"); err == nil {
		t.Fatal("lookup of unknown scenario should have failed")
	}

	sources := s.Sources()
	// 2 workflows × (1 baseline + 2 methods)
	if len(sources) != 6 {
		t.Fatalf("expected 6 sources, got %d", len(sources))
	}
	want := "runs/crispr/wf_cell/harmony/metrics.csv"
	if sources[1].MetricsPath != want {
		t.Fatalf("expected metrics path %q, got %q", want, sources[1].MetricsPath)
	}
}
