// internal/render/results.go
// Package render formats the canonical tables into presentation artifacts:
// the results table in several output formats and the chart documents. No
// filtering, aggregation, or join logic lives here; renderers present the
// tables exactly as given.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lipglosstable "github.com/charmbracelet/lipgloss/table"

	"github.com/benchmerge/benchmerge/internal/artifact"
	"github.com/benchmerge/benchmerge/internal/tables"
)

// Output-format tokens accepted by ResultsTable.
const (
	FormatMarkdown = "markdown"
	FormatTSV      = "tsv"
	FormatCSV      = "csv"
	FormatTerminal = "terminal"
	FormatHTML     = "html"
)

// ResultsTable renders the wide table in the requested format, preserving
// row and column order. An unrecognized format token fails with
// UnsupportedFormatError.
func ResultsTable(pivot tables.PivotTable, format string) (string, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(pivot), nil
	case FormatTSV:
		return renderSeparated(pivot, "\t"), nil
	case FormatCSV:
		return string(artifact.EncodeWideCSV(pivot)), nil
	case FormatTerminal:
		return renderTerminal(pivot), nil
	case FormatHTML:
		return renderHTMLTable(pivot)
	default:
		return "", &tables.UnsupportedFormatError{Format: format}
	}
}

// FileExtension maps a format token to the file extension its artifact is
// published under. Unknown tokens fall back to txt; ResultsTable already
// rejects them.
func FileExtension(format string) string {
	switch format {
	case FormatMarkdown:
		return "md"
	case FormatTSV:
		return "tsv"
	case FormatCSV:
		return "csv"
	case FormatHTML:
		return "html"
	default:
		return "txt"
	}
}

func headerColumns(pivot tables.PivotTable) []string {
	return append([]string{"workflow", "method"}, pivot.Metrics...)
}

func rowFields(pivot tables.PivotTable, row tables.PivotRow) []string {
	fields := make([]string, 0, len(pivot.Metrics)+2)
	fields = append(fields, row.Key.Workflow, row.Key.Method)
	for _, metric := range pivot.Metrics {
		fields = append(fields, formatCell(row.Cell(metric)))
	}
	return fields
}

func formatCell(cell tables.Cell) string {
	if !cell.Valid {
		return tables.Missing
	}
	return fmt.Sprintf("%.4f", cell.Value)
}

func renderMarkdown(pivot tables.PivotTable) string {
	var buf bytes.Buffer
	header := headerColumns(pivot)
	buf.WriteString("| " + strings.Join(header, " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range pivot.Rows {
		buf.WriteString("| " + strings.Join(rowFields(pivot, row), " | ") + " |\n")
	}
	return buf.String()
}

func renderSeparated(pivot tables.PivotTable, sep string) string {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(headerColumns(pivot), sep) + "\n")
	for _, row := range pivot.Rows {
		buf.WriteString(strings.Join(rowFields(pivot, row), sep) + "\n")
	}
	return buf.String()
}

func renderTerminal(pivot tables.PivotTable) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := lipglosstable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lipglosstable.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headerColumns(pivot)...)
	for _, row := range pivot.Rows {
		t.Row(rowFields(pivot, row)...)
	}
	return t.String()
}
