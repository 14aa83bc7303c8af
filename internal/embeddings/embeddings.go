// internal/embeddings/embeddings.go
// Package embeddings consolidates per-run embedding-coordinate artifacts and
// joins them against the pivoted score table. Unlike the score path, no
// deny-list filtering happens here: projections exist to inspect every
// method, including those excluded from aggregate scoring.
package embeddings

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benchmerge/benchmerge/internal/enumeration"
	"github.com/benchmerge/benchmerge/internal/tables"
)

const (
	colSampleID    = "sample_id"
	colDim1        = "dim1"
	colDim2        = "dim2"
	colBatchLabel  = "batch_label"
	colSourceLabel = "source_label"
)

// ReadEmbeddingTable loads one per-run embedding-coordinate artifact and
// tags every sample with the run's (scenario, workflow, method). Batch and
// source labels pass through unchanged.
func ReadEmbeddingTable(src enumeration.Source) (tables.EmbeddingsTable, error) {
	file, err := os.Open(src.EmbeddingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &tables.MissingSourceError{Path: src.EmbeddingsPath, Key: src.Key}
		}
		return nil, fmt.Errorf("could not open embeddings artifact %q: %w", src.EmbeddingsPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &tables.SchemaMismatchError{
			Path:    src.EmbeddingsPath,
			Missing: []string{colSampleID, colDim1, colDim2, colBatchLabel, colSourceLabel},
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header of %q: %w", src.EmbeddingsPath, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	var missing []string
	for _, required := range []string{colSampleID, colDim1, colDim2, colBatchLabel, colSourceLabel} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &tables.SchemaMismatchError{Path: src.EmbeddingsPath, Missing: missing}
	}

	table := make(tables.EmbeddingsTable, 0, 64)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("could not read %q line %d: %w", src.EmbeddingsPath, line, err)
		}
		dim1, err := parseDim(row, idx[colDim1], src.EmbeddingsPath, line)
		if err != nil {
			return nil, err
		}
		dim2, err := parseDim(row, idx[colDim2], src.EmbeddingsPath, line)
		if err != nil {
			return nil, err
		}
		table = append(table, tables.EmbeddingRecord{
			Scenario:    src.Scenario,
			Workflow:    src.Key.Workflow,
			Method:      src.Key.Method,
			SampleID:    row[idx[colSampleID]],
			Dim1:        dim1,
			Dim2:        dim2,
			BatchLabel:  row[idx[colBatchLabel]],
			SourceLabel: row[idx[colSourceLabel]],
		})
	}
	return table, nil
}

func parseDim(row []string, col int, path string, line int) (float64, error) {
	if col >= len(row) {
		return 0, &tables.SchemaMismatchError{
			Path:   path,
			Reason: fmt.Sprintf("line %d has %d fields, fewer than the header", line, len(row)),
		}
	}
	value, err := strconv.ParseFloat(row[col], 64)
	if err != nil {
		return 0, &tables.SchemaMismatchError{
			Path:   path,
			Reason: fmt.Sprintf("line %d: coordinate %q is not numeric", line, row[col]),
		}
	}
	return value, nil
}

// Consolidate reads every embedding artifact in the expanded enumeration and
// concatenates them into one canonical table ordered by
// (workflow, method, sample_id).
func Consolidate(sources []enumeration.Source) (tables.EmbeddingsTable, error) {
	consolidated := make(tables.EmbeddingsTable, 0)
	for _, src := range sources {
		table, err := ReadEmbeddingTable(src)
		if err != nil {
			return nil, err
		}
		consolidated = append(consolidated, table...)
	}
	consolidated.SortCanonical()
	return consolidated, nil
}
