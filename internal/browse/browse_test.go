// internal/browse/browse_test.go
package browse

import (
	"strings"
	"testing"

	"github.com/benchmerge/benchmerge/internal/tables"
)

func testPivot() tables.PivotTable {
	return tables.PivotTable{
		Metrics: []string{"nmi", "kbet"},
		Rows: []tables.PivotRow{
			{
				Key: tables.RunKey{Workflow: "wf_cell", Method: "harmony"},
				Cells: map[string]tables.Cell{
					"nmi":  {Value: 0.91, Valid: true},
					"kbet": {Value: 0.42, Valid: true},
				},
			},
			{
				Key: tables.RunKey{Workflow: "wf_cell", Method: "mnn"},
				Cells: map[string]tables.Cell{
					"nmi": {Value: 0.87, Valid: true},
				},
			},
		},
	}
}

func TestNewModelRendersRows(t *testing.T) {
	m := newModel(testPivot(), "crispr results")

	view := m.View()
	if !strings.Contains(view, "crispr results") {
		t.Fatalf("expected title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "harmony") {
		t.Fatalf("expected method row in view, got:\n%s", view)
	}
	if !strings.Contains(view, "0.9100") {
		t.Fatalf("expected formatted score in view, got:\n%s", view)
	}
	if !strings.Contains(view, tables.Missing) {
		t.Fatalf("expected missing marker in view, got:\n%s", view)
	}
}

func TestFormatCell(t *testing.T) {
	if got := formatCell(tables.Cell{Value: 0.5, Valid: true}); got != "0.5000" {
		t.Fatalf("unexpected cell text %q", got)
	}
	if got := formatCell(tables.Cell{}); got != tables.Missing {
		t.Fatalf("expected missing marker, got %q", got)
	}
}
