// internal/scores/select.go
package scores

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/benchmerge/benchmerge/internal/tables"
)

// variantSuffix matches the indexed suffix a parameter sweep appends to its
// method variants (e.g. sphering_03).
var variantSuffix = regexp.MustCompile(`_[0-9]+$`)

// Selection is the winning variant of one method under select-best.
type Selection struct {
	Method  string
	Variant string
	Score   float64
}

// SelectBest picks, for each base method, the variant with the highest mean
// of the ranking metric across workflows. Methods without sweep variants
// compete as their own single candidate. Ties resolve to the
// lexicographically smaller variant name so repeat runs agree.
func SelectBest(long tables.ScoreTable, metric string) ([]Selection, error) {
	type acc struct {
		sum float64
		n   int
	}
	byVariant := make(map[string]*acc)
	for _, rec := range long {
		if rec.MetricName != metric {
			continue
		}
		a := byVariant[rec.Method]
		if a == nil {
			a = &acc{}
			byVariant[rec.Method] = a
		}
		a.sum += rec.Value
		a.n++
	}
	if len(byVariant) == 0 {
		return nil, fmt.Errorf("metric %q not present in the score table", metric)
	}

	best := make(map[string]Selection)
	for variant, a := range byVariant {
		method := variantSuffix.ReplaceAllString(variant, "")
		score := a.sum / float64(a.n)
		current, seen := best[method]
		if !seen || score > current.Score || (score == current.Score && variant < current.Variant) {
			best[method] = Selection{Method: method, Variant: variant, Score: score}
		}
	}

	selections := make([]Selection, 0, len(best))
	for _, sel := range best {
		selections = append(selections, sel)
	}
	sort.Slice(selections, func(i, j int) bool {
		return selections[i].Method < selections[j].Method
	})
	return selections, nil
}
