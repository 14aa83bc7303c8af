package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "benchmerge.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogStage("tidy", "crispr", "out/scores.csv", 42)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[TIDY] scenario=crispr artifact=out/scores.csv rows=42") {
		t.Fatalf("expected LogStage content, got: %s", content)
	}
}

func TestLogStageOmitsEmptyFields(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "benchmerge.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogStage("pivot", "", "", 3)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "scenario=") || strings.Contains(content, "artifact=") {
		t.Fatalf("expected empty fields omitted, got: %s", content)
	}
	if !strings.Contains(content, "[PIVOT] rows=3") {
		t.Fatalf("expected stage line, got: %s", content)
	}
}
