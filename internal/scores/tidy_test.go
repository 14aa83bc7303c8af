// internal/scores/tidy_test.go
package scores

import (
	"reflect"
	"testing"

	"github.com/benchmerge/benchmerge/internal/denylist"
	"github.com/benchmerge/benchmerge/internal/tables"
)

func rec(workflow, method, metric string, value float64) tables.MetricRecord {
	return tables.MetricRecord{
		Scenario:   "crispr",
		Workflow:   workflow,
		Method:     method,
		MetricName: metric,
		Value:      value,
	}
}

// TestBuildTidyFiltersAndSorts covers the tidy stage end to end: deny-listed
// metrics and methods disappear, everything else survives unchanged, and the
// output is in canonical order.
func TestBuildTidyFiltersAndSorts(t *testing.T) {
	raw := []tables.ScoreTable{
		{
			rec("wf_well", "mnn", "nmi", 0.81),
			rec("wf_well", "mnn", "kbet", 0.33),
		},
		{
			rec("wf_cell", "harmony", "nmi", 0.91),
			rec("wf_cell", "harmony", "lisi", 0.50),
		},
		{
			rec("wf_cell", "scanorama", "nmi", 0.70),
		},
	}

	tidy := BuildTidy(raw, denylist.New("lisi"), denylist.New("scanorama"))

	want := tables.ScoreTable{
		rec("wf_cell", "harmony", "nmi", 0.91),
		rec("wf_well", "mnn", "kbet", 0.33),
		rec("wf_well", "mnn", "nmi", 0.81),
	}
	if !reflect.DeepEqual(tidy, want) {
		t.Fatalf("unexpected tidy table:\ngot  %+v\nwant %+v", tidy, want)
	}
}

// TestBuildTidyReadOrderIndependent verifies the same artifact set yields an
// identical table regardless of the order the per-run tables arrive in.
func TestBuildTidyReadOrderIndependent(t *testing.T) {
	a := tables.ScoreTable{rec("wf_cell", "harmony", "nmi", 0.91)}
	b := tables.ScoreTable{rec("wf_cell", "mnn", "nmi", 0.81)}
	c := tables.ScoreTable{rec("wf_well", "harmony", "ari", 0.44)}

	forward := BuildTidy([]tables.ScoreTable{a, b, c}, denylist.New(), denylist.New())
	reversed := BuildTidy([]tables.ScoreTable{c, b, a}, denylist.New(), denylist.New())

	if !reflect.DeepEqual(forward, reversed) {
		t.Fatalf("tidy output depends on read order:\nforward  %+v\nreversed %+v", forward, reversed)
	}
}

// TestBuildTidyKeepsSparsity verifies a metric observed for one run and not
// another is passed through as-is, never imputed.
func TestBuildTidyKeepsSparsity(t *testing.T) {
	raw := []tables.ScoreTable{
		{rec("wf_cell", "harmony", "nmi", 0.91), rec("wf_cell", "harmony", "ari", 0.55)},
		{rec("wf_cell", "mnn", "nmi", 0.81)},
	}

	tidy := BuildTidy(raw, denylist.New(), denylist.New())
	if len(tidy) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(tidy))
	}
}

func TestBuildTidyEmptyDenyListsAreNoOps(t *testing.T) {
	raw := []tables.ScoreTable{{rec("wf_cell", "harmony", "nmi", 0.91)}}

	tidy := BuildTidy(raw, denylist.New(), denylist.New())
	if len(tidy) != 1 {
		t.Fatalf("expected the row to survive, got %d rows", len(tidy))
	}
}
