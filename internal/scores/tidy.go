// internal/scores/tidy.go
package scores

import (
	"github.com/benchmerge/benchmerge/internal/denylist"
	"github.com/benchmerge/benchmerge/internal/tables"
)

// BuildTidy concatenates the tagged per-run tables into one canonical
// long-format table. The metric and method deny-lists are applied here, and
// only here; downstream stages never re-filter. Rows survive with their
// values unchanged, sparsity intact (a metric observed for one run and not
// another is valid and never imputed). The result is canonically sorted so
// the same artifact set yields byte-identical output regardless of read
// order.
func BuildTidy(raw []tables.ScoreTable, metricDeny, methodDeny denylist.DenyList) tables.ScoreTable {
	total := 0
	for _, table := range raw {
		total += len(table)
	}

	tidy := make(tables.ScoreTable, 0, total)
	for _, table := range raw {
		for _, rec := range table {
			if metricDeny.Denies(rec.MetricName) {
				continue
			}
			if methodDeny.Denies(rec.Method) {
				continue
			}
			tidy = append(tidy, rec)
		}
	}

	tidy.SortCanonical()
	return tidy
}
