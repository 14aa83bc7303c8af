// internal/tables/tables.go
// Package tables defines the canonical table shapes shared by the
// consolidation stages: the long-format score table, the pivoted wide
// table, the consolidated embeddings table, and the composite axis points.
package tables

import "sort"

// Missing is the marker rendered for a wide-table cell that has no
// observation in the long table.
const Missing = "NA"

// RunKey identifies one evaluation run: a workflow benchmarked with a method.
type RunKey struct {
	Workflow string
	Method   string
}

// Less orders keys by (workflow, method).
func (k RunKey) Less(other RunKey) bool {
	if k.Workflow != other.Workflow {
		return k.Workflow < other.Workflow
	}
	return k.Method < other.Method
}

// MetricRecord is a single observation in the long-format score table.
type MetricRecord struct {
	Scenario   string
	Workflow   string
	Method     string
	MetricName string
	Value      float64
}

// Key returns the run this record belongs to.
func (r MetricRecord) Key() RunKey {
	return RunKey{Workflow: r.Workflow, Method: r.Method}
}

// ScoreTable is an ordered sequence of metric observations (long form).
type ScoreTable []MetricRecord

// SortCanonical orders the table by (workflow, method, metric_name) so that
// output is deterministic regardless of artifact read order. Scenario breaks
// remaining ties.
func (t ScoreTable) SortCanonical() {
	sort.SliceStable(t, func(i, j int) bool {
		a, b := t[i], t[j]
		if a.Workflow != b.Workflow {
			return a.Workflow < b.Workflow
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		if a.MetricName != b.MetricName {
			return a.MetricName < b.MetricName
		}
		return a.Scenario < b.Scenario
	})
}

// Keys returns the distinct run keys present in the table, ordered by
// (workflow, method).
func (t ScoreTable) Keys() []RunKey {
	seen := make(map[RunKey]bool, len(t))
	keys := make([]RunKey, 0)
	for _, rec := range t {
		key := rec.Key()
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// MetricNames returns the distinct metric names present in the table, sorted.
func (t ScoreTable) MetricNames() []string {
	seen := make(map[string]bool, len(t))
	names := make([]string, 0)
	for _, rec := range t {
		if !seen[rec.MetricName] {
			seen[rec.MetricName] = true
			names = append(names, rec.MetricName)
		}
	}
	sort.Strings(names)
	return names
}

// SelectMetrics projects the table onto a subset of metric names, for
// presentation artifacts restricted to a few metrics. This is selection for
// display, not deny-list filtering: the canonical tables are unaffected.
func (t ScoreTable) SelectMetrics(names ...string) ScoreTable {
	if len(names) == 0 {
		return t
	}
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}
	out := make(ScoreTable, 0, len(t))
	for _, rec := range t {
		if keep[rec.MetricName] {
			out = append(out, rec)
		}
	}
	return out
}

// Cell is one wide-table value. A cell absent from the long table has
// Valid=false; it is never backfilled with a default number.
type Cell struct {
	Value float64
	Valid bool
}

// PivotRow is one wide-table row: a run key plus one cell per metric column.
type PivotRow struct {
	Key   RunKey
	Cells map[string]Cell
}

// Cell returns the row's cell for a metric, or a missing cell when the
// metric was never observed for this run.
func (r PivotRow) Cell(metric string) Cell {
	return r.Cells[metric]
}

// PivotTable is the wide-format score table: exactly one row per
// (workflow, method) present in the long table, one column per surviving
// metric. Rows are ordered by (workflow, method) and columns by metric name.
type PivotTable struct {
	Metrics []string
	Rows    []PivotRow
}

// Row returns the row for a key, if present.
func (p PivotTable) Row(key RunKey) (PivotRow, bool) {
	for _, row := range p.Rows {
		if row.Key == key {
			return row, true
		}
	}
	return PivotRow{}, false
}

// EmbeddingRecord is one projected sample from a per-run embedding artifact.
// Batch and source labels are carried through unchanged for coloring
// projection plots.
type EmbeddingRecord struct {
	Scenario    string
	Workflow    string
	Method      string
	SampleID    string
	Dim1        float64
	Dim2        float64
	BatchLabel  string
	SourceLabel string
}

// Key returns the run this record belongs to.
func (r EmbeddingRecord) Key() RunKey {
	return RunKey{Workflow: r.Workflow, Method: r.Method}
}

// EmbeddingsTable is the consolidated embeddings table, keyed by
// (workflow, method, sample_id). It is intentionally never subject to the
// metric/method deny-lists: projections are for visual inspection of every
// method, including ones excluded from aggregate scoring.
type EmbeddingsTable []EmbeddingRecord

// SortCanonical orders the table by (workflow, method, sample_id).
func (t EmbeddingsTable) SortCanonical() {
	sort.SliceStable(t, func(i, j int) bool {
		a, b := t[i], t[j]
		if a.Workflow != b.Workflow {
			return a.Workflow < b.Workflow
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.SampleID < b.SampleID
	})
}

// CompositeAxisPoint is a two-axis summary for one run: an aggregate over
// each metric group plus a dispersion statistic across the contributing
// metrics. Points below the reliability threshold are discarded upstream.
type CompositeAxisPoint struct {
	Workflow    string
	Method      string
	AxisA       float64
	AxisB       float64
	Reliability float64
}
