// internal/embeddings/join.go
package embeddings

import (
	"fmt"

	"github.com/benchmerge/benchmerge/internal/tables"
)

// JoinPolicy decides what happens to embedding rows whose method has no row
// in the pivot table (typically because the method was deny-listed out of
// aggregate scoring). The policy is explicit configuration, never an
// implicit default chosen from the data.
type JoinPolicy string

const (
	// JoinKeep keeps unmatched rows and renders their score annotations as
	// missing. This is the default: projections show every method.
	JoinKeep JoinPolicy = "keep"
	// JoinDrop removes unmatched rows from the joined output.
	JoinDrop JoinPolicy = "drop"
)

// ParseJoinPolicy validates a join policy token from configuration. An
// empty token resolves to JoinKeep.
func ParseJoinPolicy(token string) (JoinPolicy, error) {
	switch JoinPolicy(token) {
	case "":
		return JoinKeep, nil
	case JoinKeep, JoinDrop:
		return JoinPolicy(token), nil
	default:
		return "", fmt.Errorf("unknown join policy %q (expected keep or drop)", token)
	}
}

// AnnotatedEmbedding is one embedding row joined with its method's aggregate
// scores. Unmatched rows under JoinKeep carry missing cells for every
// metric.
type AnnotatedEmbedding struct {
	tables.EmbeddingRecord
	Matched bool
	Scores  map[string]tables.Cell
}

// Join annotates each embedding row with the pivot-table scores of its
// (workflow, method). Row order follows the consolidated embeddings table.
func Join(embeddings tables.EmbeddingsTable, pivot tables.PivotTable, policy JoinPolicy) []AnnotatedEmbedding {
	byKey := make(map[tables.RunKey]tables.PivotRow, len(pivot.Rows))
	for _, row := range pivot.Rows {
		byKey[row.Key] = row
	}

	joined := make([]AnnotatedEmbedding, 0, len(embeddings))
	for _, rec := range embeddings {
		pivotRow, matched := byKey[rec.Key()]
		if !matched && policy == JoinDrop {
			continue
		}
		annotated := AnnotatedEmbedding{
			EmbeddingRecord: rec,
			Matched:         matched,
			Scores:          make(map[string]tables.Cell, len(pivot.Metrics)),
		}
		if matched {
			for _, metric := range pivot.Metrics {
				annotated.Scores[metric] = pivotRow.Cell(metric)
			}
		}
		joined = append(joined, annotated)
	}
	return joined
}
