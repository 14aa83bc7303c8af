// internal/render/results_test.go
package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/benchmerge/benchmerge/internal/tables"
)

func testPivot() tables.PivotTable {
	return tables.PivotTable{
		Metrics: []string{"kbet", "nmi"},
		Rows: []tables.PivotRow{
			{
				Key: tables.RunKey{Workflow: "wf_cell", Method: "harmony"},
				Cells: map[string]tables.Cell{
					"kbet": {Value: 0.42, Valid: true},
					"nmi":  {Value: 0.91, Valid: true},
				},
			},
			{
				Key: tables.RunKey{Workflow: "wf_cell", Method: "mnn"},
				Cells: map[string]tables.Cell{
					"nmi": {Value: 0.81, Valid: true},
				},
			},
		},
	}
}

func TestResultsTableMarkdown(t *testing.T) {
	out, err := ResultsTable(testPivot(), FormatMarkdown)
	if err != nil {
		t.Fatalf("ResultsTable error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "| workflow | method | kbet | nmi |") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[3], tables.Missing) {
		t.Fatalf("missing cell must render the explicit marker: %s", lines[3])
	}
	if !strings.Contains(lines[2], "0.9100") {
		t.Fatalf("unexpected value formatting: %s", lines[2])
	}
}

func TestResultsTableSeparatedFormats(t *testing.T) {
	tsv, err := ResultsTable(testPivot(), FormatTSV)
	if err != nil {
		t.Fatalf("ResultsTable(tsv) error: %v", err)
	}
	if !strings.HasPrefix(tsv, "workflow\tmethod\tkbet\tnmi\n") {
		t.Fatalf("unexpected tsv header: %q", tsv)
	}

	csvOut, err := ResultsTable(testPivot(), FormatCSV)
	if err != nil {
		t.Fatalf("ResultsTable(csv) error: %v", err)
	}
	if !strings.HasPrefix(csvOut, "workflow,method,kbet,nmi\n") {
		t.Fatalf("unexpected csv header: %q", csvOut)
	}
	// The CSV artifact encodes missing as an empty field, not a marker.
	if strings.Contains(csvOut, tables.Missing) {
		t.Fatalf("csv output must not carry the display marker: %q", csvOut)
	}
}

func TestResultsTableTerminal(t *testing.T) {
	out, err := ResultsTable(testPivot(), FormatTerminal)
	if err != nil {
		t.Fatalf("ResultsTable(terminal) error: %v", err)
	}
	for _, want := range []string{"workflow", "harmony", "0.4200", tables.Missing} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in terminal output:\n%s", want, out)
		}
	}
}

func TestResultsTableHTML(t *testing.T) {
	out, err := ResultsTable(testPivot(), FormatHTML)
	if err != nil {
		t.Fatalf("ResultsTable(html) error: %v", err)
	}
	for _, want := range []string{"<table", "<th>nmi</th>", "harmony", tables.Missing} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in html output:\n%s", want, out)
		}
	}
}

func TestResultsTableUnsupportedFormat(t *testing.T) {
	_, err := ResultsTable(testPivot(), "xml")
	var unsupported *tables.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if unsupported.Format != "xml" {
		t.Fatalf("error does not carry the offending token: %+v", unsupported)
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		FormatMarkdown: "md",
		FormatTSV:      "tsv",
		FormatCSV:      "csv",
		FormatHTML:     "html",
		FormatTerminal: "txt",
	}
	for format, want := range cases {
		if got := FileExtension(format); got != want {
			t.Fatalf("FileExtension(%q)=%q want %q", format, got, want)
		}
	}
}
