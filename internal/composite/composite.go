// internal/composite/composite.go
// Package composite reduces the long score table into two-axis summary
// points, one per (workflow, method), for trade-off charts. A point whose
// contributing metrics disagree too much is not trustworthy as a two-axis
// comparison and is dropped.
package composite

import (
	"fmt"
	"math"

	"github.com/benchmerge/benchmerge/internal/tables"
)

// AxisGroups maps metric names onto the two composite axes. The default
// split follows the study design: one axis summarizes representation
// quality, the other batch/nuisance removal.
type AxisGroups struct {
	AxisAName string   `json:"axis_a_name"`
	AxisBName string   `json:"axis_b_name"`
	AxisA     []string `json:"axis_a"`
	AxisB     []string `json:"axis_b"`
}

// DefaultAxisGroups returns the metric split used by the embedding
// benchmark: bio-conservation metrics versus batch-removal metrics.
func DefaultAxisGroups() AxisGroups {
	return AxisGroups{
		AxisAName: "bio_conservation",
		AxisBName: "batch_removal",
		AxisA:     []string{"nmi", "ari", "asw", "il_f1", "il_asw"},
		AxisB:     []string{"silhouette_batch", "pcr_batch", "graph_conn", "kbet", "lisi"},
	}
}

// Validate rejects empty or overlapping axis groups.
func (g AxisGroups) Validate() error {
	if len(g.AxisA) == 0 || len(g.AxisB) == 0 {
		return fmt.Errorf("both axis groups must name at least one metric")
	}
	inA := make(map[string]bool, len(g.AxisA))
	for _, name := range g.AxisA {
		inA[name] = true
	}
	for _, name := range g.AxisB {
		if inA[name] {
			return fmt.Errorf("metric %q cannot belong to both axis groups", name)
		}
	}
	return nil
}

// Compute derives one CompositeAxisPoint per (workflow, method) in the long
// table: each axis is the mean over its metric group, and reliability is the
// coefficient of variation across every contributing metric. Points with
// reliability below minCVar are discarded, as are runs missing either axis
// entirely. The output is ordered by (workflow, method).
func Compute(long tables.ScoreTable, groups AxisGroups, minCVar float64) ([]tables.CompositeAxisPoint, error) {
	if err := groups.Validate(); err != nil {
		return nil, err
	}

	inA := memberSet(groups.AxisA)
	inB := memberSet(groups.AxisB)

	type contribution struct {
		axisA []float64
		axisB []float64
	}
	byKey := make(map[tables.RunKey]*contribution)
	for _, rec := range long {
		if !inA[rec.MetricName] && !inB[rec.MetricName] {
			continue
		}
		key := rec.Key()
		c := byKey[key]
		if c == nil {
			c = &contribution{}
			byKey[key] = c
		}
		if inA[rec.MetricName] {
			c.axisA = append(c.axisA, rec.Value)
		} else {
			c.axisB = append(c.axisB, rec.Value)
		}
	}

	points := make([]tables.CompositeAxisPoint, 0, len(byKey))
	for _, key := range long.Keys() {
		c := byKey[key]
		if c == nil || len(c.axisA) == 0 || len(c.axisB) == 0 {
			continue
		}
		all := make([]float64, 0, len(c.axisA)+len(c.axisB))
		all = append(all, c.axisA...)
		all = append(all, c.axisB...)

		reliability := coefficientOfVariation(all)
		if reliability < minCVar {
			continue
		}
		points = append(points, tables.CompositeAxisPoint{
			Workflow:    key.Workflow,
			Method:      key.Method,
			AxisA:       mean(c.axisA),
			AxisB:       mean(c.axisB),
			Reliability: reliability,
		})
	}
	return points, nil
}

func memberSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation is the dispersion statistic used as the
// reliability measure: population standard deviation over the absolute
// mean. A zero mean yields zero, which the threshold then discards.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return math.Sqrt(sum/float64(len(values))) / math.Abs(m)
}
