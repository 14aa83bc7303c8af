// internal/scores/reader.go
// Package scores implements the score path of the consolidation engine:
// reading per-run metric artifacts, building the canonical long table, and
// pivoting it into the wide table.
package scores

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benchmerge/benchmerge/internal/enumeration"
	"github.com/benchmerge/benchmerge/internal/tables"
)

// Required columns for a per-run metrics artifact. Any additional columns
// are tolerated; the canonical long schema is fixed.
const (
	colMetricName = "metric_name"
	colValue      = "value"
)

// ReadMetricsTable loads one per-run metrics artifact and tags every row
// with the run's (scenario, workflow, method). A missing file is a
// MissingSourceError: the enumeration is exhaustive, so absence is never a
// skip. A header without the required columns, or a value that does not
// parse as a number, is a SchemaMismatchError.
func ReadMetricsTable(src enumeration.Source) (tables.ScoreTable, error) {
	file, err := os.Open(src.MetricsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &tables.MissingSourceError{Path: src.MetricsPath, Key: src.Key}
		}
		return nil, fmt.Errorf("could not open metrics artifact %q: %w", src.MetricsPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &tables.SchemaMismatchError{Path: src.MetricsPath, Missing: []string{colMetricName, colValue}}
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header of %q: %w", src.MetricsPath, err)
	}

	metricIdx, valueIdx := -1, -1
	for i, name := range header {
		switch name {
		case colMetricName:
			metricIdx = i
		case colValue:
			valueIdx = i
		}
	}
	var missing []string
	if metricIdx < 0 {
		missing = append(missing, colMetricName)
	}
	if valueIdx < 0 {
		missing = append(missing, colValue)
	}
	if len(missing) > 0 {
		return nil, &tables.SchemaMismatchError{Path: src.MetricsPath, Missing: missing}
	}

	table := make(tables.ScoreTable, 0, 16)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("could not read %q line %d: %w", src.MetricsPath, line, err)
		}
		if metricIdx >= len(row) || valueIdx >= len(row) {
			return nil, &tables.SchemaMismatchError{
				Path:   src.MetricsPath,
				Reason: fmt.Sprintf("line %d has %d fields, fewer than the header", line, len(row)),
			}
		}
		value, err := strconv.ParseFloat(row[valueIdx], 64)
		if err != nil {
			return nil, &tables.SchemaMismatchError{
				Path:   src.MetricsPath,
				Reason: fmt.Sprintf("line %d: value %q is not numeric", line, row[valueIdx]),
			}
		}
		table = append(table, tables.MetricRecord{
			Scenario:   src.Scenario,
			Workflow:   src.Key.Workflow,
			Method:     src.Key.Method,
			MetricName: row[metricIdx],
			Value:      value,
		})
	}
	return table, nil
}

// ReadAllMetrics loads every metrics artifact in the expanded enumeration,
// in order. The first failure aborts the stage.
func ReadAllMetrics(sources []enumeration.Source) ([]tables.ScoreTable, error) {
	out := make([]tables.ScoreTable, 0, len(sources))
	for _, src := range sources {
		table, err := ReadMetricsTable(src)
		if err != nil {
			return nil, err
		}
		out = append(out, table)
	}
	return out, nil
}
