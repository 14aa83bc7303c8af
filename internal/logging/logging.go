package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogStage emits one line per pipeline stage with its scenario and row
// count, so a consolidation run reads as a sequence of published artifacts.
func LogStage(stage, scenario, path string, rows int) {
	parts := []string{fmt.Sprintf("[%s]", strings.ToUpper(stage))}
	if scenario != "" {
		parts = append(parts, fmt.Sprintf("scenario=%s", scenario))
	}
	if path != "" {
		parts = append(parts, fmt.Sprintf("artifact=%s", path))
	}
	parts = append(parts, fmt.Sprintf("rows=%d", rows))
	log.Println(strings.Join(parts, " "))
}
