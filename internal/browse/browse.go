// internal/browse/browse.go
// Package browse provides an interactive terminal viewer for the wide
// results table.
package browse

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benchmerge/benchmerge/internal/tables"
	"github.com/benchmerge/benchmerge/internal/util"
)

const maxColumnWidth = 18

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// model is the Bubble Tea model wrapping the results table viewer.
type model struct {
	table table.Model
	title string
}

// Init returns the initial command for the viewer; no startup work is needed.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize events for the viewer.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table with its title and key help.
func (m model) View() string {
	return fmt.Sprintf("%s\n%s\n%s\n",
		m.title,
		baseStyle.Render(m.table.View()),
		helpStyle.Render("↑/↓ scroll · q quit"))
}

// newModel builds the viewer model from a wide results table.
func newModel(pivot tables.PivotTable, title string) model {
	columns := []table.Column{
		{Title: "workflow", Width: columnWidth("workflow", pivot, keyWidthWorkflow)},
		{Title: "method", Width: columnWidth("method", pivot, keyWidthMethod)},
	}
	for _, metric := range pivot.Metrics {
		columns = append(columns, table.Column{
			Title: util.TruncateRunes(metric, maxColumnWidth),
			Width: columnWidth(metric, pivot, metricWidth(metric)),
		})
	}

	rows := make([]table.Row, 0, len(pivot.Rows))
	for _, row := range pivot.Rows {
		cells := []string{row.Key.Workflow, row.Key.Method}
		for _, metric := range pivot.Metrics {
			cells = append(cells, formatCell(row.Cell(metric)))
		}
		rows = append(rows, table.Row(cells))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	return model{table: t, title: title}
}

// Run opens the interactive viewer and blocks until the user quits.
func Run(pivot tables.PivotTable, title string) error {
	p := tea.NewProgram(newModel(pivot, title), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse results: %w", err)
	}
	return nil
}

func formatCell(cell tables.Cell) string {
	if !cell.Valid {
		return tables.Missing
	}
	return strconv.FormatFloat(cell.Value, 'f', 4, 64)
}

func columnWidth(header string, pivot tables.PivotTable, content func(tables.PivotRow) int) int {
	width := len(header)
	for _, row := range pivot.Rows {
		if w := content(row); w > width {
			width = w
		}
	}
	if width > maxColumnWidth {
		width = maxColumnWidth
	}
	return width
}

func keyWidthWorkflow(row tables.PivotRow) int { return len(row.Key.Workflow) }

func keyWidthMethod(row tables.PivotRow) int { return len(row.Key.Method) }

func metricWidth(metric string) func(tables.PivotRow) int {
	return func(row tables.PivotRow) int {
		return len(formatCell(row.Cell(metric)))
	}
}
