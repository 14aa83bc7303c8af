// internal/scores/pivot.go
package scores

import (
	"fmt"
	"sort"

	"github.com/benchmerge/benchmerge/internal/tables"
)

// DuplicatePolicy resolves multiple observations of the same
// (workflow, method, metric_name) key during pivoting. The policy is a
// required, injectable parameter; it is never inferred from the data.
type DuplicatePolicy string

const (
	// PolicyReject fails the pivot with a DuplicateKeyError on any
	// duplicate. This is the default: duplicate observations usually mean
	// an upstream run was double-counted.
	PolicyReject DuplicatePolicy = "reject"
	// PolicyFirst keeps the first observation in canonical order.
	PolicyFirst DuplicatePolicy = "first"
	// PolicyMean averages the duplicate observations.
	PolicyMean DuplicatePolicy = "mean"
)

// ParseDuplicatePolicy validates a policy token from configuration. An
// empty token resolves to PolicyReject, the safest default.
func ParseDuplicatePolicy(token string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(token) {
	case "":
		return PolicyReject, nil
	case PolicyReject, PolicyFirst, PolicyMean:
		return DuplicatePolicy(token), nil
	default:
		return "", fmt.Errorf("unknown duplicate-key policy %q (expected reject, first, or mean)", token)
	}
}

// BuildPivot reshapes the canonical long table into the wide table: one row
// per (workflow, method), one column per surviving metric, missing cells
// kept as explicit missing markers. Keys lists runs that must produce a row
// even when none of their metrics survived; pass nil to derive rows from the
// long table alone.
func BuildPivot(long tables.ScoreTable, policy DuplicatePolicy, keys []tables.RunKey) (tables.PivotTable, error) {
	if keys == nil {
		keys = long.Keys()
	} else {
		keys = mergeKeys(keys, long.Keys())
	}
	metrics := long.MetricNames()

	grouped := make(map[tables.RunKey]map[string][]float64, len(keys))
	for _, rec := range long {
		key := rec.Key()
		cells := grouped[key]
		if cells == nil {
			cells = make(map[string][]float64, len(metrics))
			grouped[key] = cells
		}
		cells[rec.MetricName] = append(cells[rec.MetricName], rec.Value)
	}

	rows := make([]tables.PivotRow, 0, len(keys))
	for _, key := range keys {
		row := tables.PivotRow{Key: key, Cells: make(map[string]tables.Cell, len(metrics))}
		for metric, values := range grouped[key] {
			cell, err := resolveCell(key, metric, values, policy)
			if err != nil {
				return tables.PivotTable{}, err
			}
			row.Cells[metric] = cell
		}
		rows = append(rows, row)
	}

	return tables.PivotTable{Metrics: metrics, Rows: rows}, nil
}

func resolveCell(key tables.RunKey, metric string, values []float64, policy DuplicatePolicy) (tables.Cell, error) {
	if len(values) == 1 {
		return tables.Cell{Value: values[0], Valid: true}, nil
	}
	switch policy {
	case PolicyFirst:
		return tables.Cell{Value: values[0], Valid: true}, nil
	case PolicyMean:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return tables.Cell{Value: sum / float64(len(values)), Valid: true}, nil
	default:
		return tables.Cell{}, &tables.DuplicateKeyError{Key: key, MetricName: metric, Count: len(values)}
	}
}

// mergeKeys unions two key lists, keeping (workflow, method) order.
func mergeKeys(a, b []tables.RunKey) []tables.RunKey {
	seen := make(map[tables.RunKey]bool, len(a)+len(b))
	merged := make([]tables.RunKey, 0, len(a)+len(b))
	for _, list := range [][]tables.RunKey{a, b} {
		for _, key := range list {
			if !seen[key] {
				seen[key] = true
				merged = append(merged, key)
			}
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Less(merged[j]) })
	return merged
}
