// internal/artifact/artifact.go
// Package artifact serializes the canonical tables to their on-disk CSV
// forms. Encoders are deterministic: a fixed input table always yields
// byte-identical output. All writes are atomic.
package artifact

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/benchmerge/benchmerge/internal/embeddings"
	"github.com/benchmerge/benchmerge/internal/scores"
	"github.com/benchmerge/benchmerge/internal/tables"
	"github.com/benchmerge/benchmerge/internal/util"
)

// Write publishes an encoded artifact atomically.
func Write(path string, data []byte) error {
	return util.WriteFileAtomic(path, data)
}

// EncodeLongCSV serializes the canonical long-format score table.
func EncodeLongCSV(long tables.ScoreTable) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"scenario", "workflow", "method", "metric_name", "value"})
	for _, rec := range long {
		w.Write([]string{rec.Scenario, rec.Workflow, rec.Method, rec.MetricName, formatFloat(rec.Value)})
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeWideCSV serializes the pivot table. Missing cells become empty
// fields, never a default number.
func EncodeWideCSV(pivot tables.PivotTable) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"workflow", "method"}, pivot.Metrics...)
	w.Write(header)
	for _, row := range pivot.Rows {
		fields := make([]string, 0, len(header))
		fields = append(fields, row.Key.Workflow, row.Key.Method)
		for _, metric := range pivot.Metrics {
			cell := row.Cell(metric)
			if !cell.Valid {
				fields = append(fields, "")
				continue
			}
			fields = append(fields, formatFloat(cell.Value))
		}
		w.Write(fields)
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeCompositeCSV serializes the two-axis summary points.
func EncodeCompositeCSV(points []tables.CompositeAxisPoint) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"workflow", "method", "axis_a", "axis_b", "reliability"})
	for _, p := range points {
		w.Write([]string{p.Workflow, p.Method, formatFloat(p.AxisA), formatFloat(p.AxisB), formatFloat(p.Reliability)})
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeEmbeddingsCSV serializes the consolidated embeddings table.
func EncodeEmbeddingsCSV(embeddings tables.EmbeddingsTable) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"workflow", "method", "sample_id", "dim1", "dim2", "batch_label", "source_label"})
	for _, rec := range embeddings {
		w.Write([]string{
			rec.Workflow, rec.Method, rec.SampleID,
			formatFloat(rec.Dim1), formatFloat(rec.Dim2),
			rec.BatchLabel, rec.SourceLabel,
		})
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeJoinedCSV serializes score-annotated embeddings. Metric columns of
// unmatched rows are empty fields, never a default number.
func EncodeJoinedCSV(joined []embeddings.AnnotatedEmbedding, metrics []string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"workflow", "method", "sample_id", "dim1", "dim2", "batch_label", "source_label", "matched"}
	header = append(header, metrics...)
	w.Write(header)
	for _, rec := range joined {
		fields := make([]string, 0, len(header))
		fields = append(fields,
			rec.Workflow, rec.Method, rec.SampleID,
			formatFloat(rec.Dim1), formatFloat(rec.Dim2),
			rec.BatchLabel, rec.SourceLabel,
			strconv.FormatBool(rec.Matched),
		)
		for _, metric := range metrics {
			cell := rec.Scores[metric]
			if !cell.Valid {
				fields = append(fields, "")
				continue
			}
			fields = append(fields, formatFloat(cell.Value))
		}
		w.Write(fields)
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeSelectionsCSV serializes select-best winners.
func EncodeSelectionsCSV(selections []scores.Selection) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"method", "variant", "score"})
	for _, sel := range selections {
		w.Write([]string{sel.Method, sel.Variant, formatFloat(sel.Score)})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
