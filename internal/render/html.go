// internal/render/html.go
package render

import (
	"bytes"
	"html/template"

	"github.com/benchmerge/benchmerge/internal/tables"
)

type htmlTableData struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// renderHTMLTable emits a standalone HTML document with the wide table.
func renderHTMLTable(pivot tables.PivotTable) (string, error) {
	data := htmlTableData{
		Title:   "benchmerge: results",
		Headers: headerColumns(pivot),
	}
	for _, row := range pivot.Rows {
		data.Rows = append(data.Rows, rowFields(pivot, row))
	}

	var buf bytes.Buffer
	if err := htmlTableTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var htmlTableTemplate = template.Must(template.New("results-table").Parse(htmlTableTemplateHTML))

const htmlTableTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: sans-serif; background-color: #F1F5F9; color: #0F172A; margin: 2rem; }
    table { border-collapse: collapse; background: #FFFFFF; box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1); }
    th, td { border: 1px solid #E2E8F0; padding: 0.4rem 0.75rem; text-align: right; }
    th { background-color: #334155; color: #F1F5F9; }
    td:first-child, td:nth-child(2), th:first-child, th:nth-child(2) { text-align: left; }
    tr:nth-child(even) { background-color: #F8FAFC; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <table>
    <thead>
      <tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
    </thead>
    <tbody>
      {{ range .Rows }}<tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
      {{ end }}
    </tbody>
  </table>
</body>
</html>
`
