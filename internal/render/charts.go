// internal/render/charts.go
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/benchmerge/benchmerge/internal/embeddings"
	"github.com/benchmerge/benchmerge/internal/tables"
)

// Labels selecting the coloring column for projection charts.
const (
	ColorByBatch  = "batch"
	ColorBySource = "source"
)

var chartPalette = []string{
	"#334155", "#64748B", "#94A3B8", "#CBD5E1", "#3B82F6",
	"#1D4ED8", "#0EA5E9", "#38BDF8", "#14B8A6", "#10B981",
	"#F59E0B", "#DC2626",
}

// BarChart renders a standalone HTML document with one bar group per
// (workflow, method) and one dataset per metric in the given long table.
// Callers wanting a restricted metric subset select it before rendering.
func BarChart(long tables.ScoreTable, title string) (string, error) {
	keys := long.Keys()
	metrics := long.MetricNames()

	labels := make([]string, 0, len(keys))
	index := make(map[tables.RunKey]int, len(keys))
	for i, key := range keys {
		labels = append(labels, key.Workflow+"/"+key.Method)
		index[key] = i
	}

	values := make(map[string][]*float64, len(metrics))
	for _, metric := range metrics {
		values[metric] = make([]*float64, len(keys))
	}
	for _, rec := range long {
		v := rec.Value
		values[rec.MetricName][index[rec.Key()]] = &v
	}

	datasets := make([]chartDataset, 0, len(metrics))
	for i, metric := range metrics {
		datasets = append(datasets, chartDataset{
			Label:           metric,
			Data:            values[metric],
			BackgroundColor: chartPalette[i%len(chartPalette)],
		})
	}

	return renderChart(title, chartConfig{
		Type: "bar",
		Data: chartData{Labels: labels, Datasets: datasets},
		Options: chartOptions{
			Responsive: true,
			Animation:  false,
			Plugins:    chartPlugins{Legend: chartLegend{Position: "bottom"}},
		},
	})
}

// CompositeChart renders the two-axis summary points as a scatter chart.
func CompositeChart(points []tables.CompositeAxisPoint, axisAName, axisBName, title string) (string, error) {
	datasets := make([]chartDataset, 0, len(points))
	for i, p := range points {
		datasets = append(datasets, chartDataset{
			Label:           p.Workflow + "/" + p.Method,
			Data:            []scatterPoint{{X: p.AxisA, Y: p.AxisB}},
			BackgroundColor: chartPalette[i%len(chartPalette)],
			PointRadius:     8,
		})
	}

	return renderChart(title, chartConfig{
		Type: "scatter",
		Data: chartData{Datasets: datasets},
		Options: chartOptions{
			Responsive: true,
			Animation:  false,
			Scales: map[string]chartScale{
				"x": {Title: chartScaleTitle{Display: true, Text: axisAName}},
				"y": {Title: chartScaleTitle{Display: true, Text: axisBName}},
			},
			Plugins: chartPlugins{Legend: chartLegend{Position: "bottom"}},
		},
	})
}

// ProjectionChart renders the joined embeddings as a projection scatter,
// one dataset per batch or source label. Which rows appear is decided by
// the join policy upstream; the renderer plots exactly what it is given.
func ProjectionChart(joined []embeddings.AnnotatedEmbedding, colorBy, title string) (string, error) {
	labelOf, err := labelSelector(colorBy)
	if err != nil {
		return "", err
	}

	order := make([]string, 0)
	grouped := make(map[string][]scatterPoint)
	for _, row := range joined {
		label := labelOf(row)
		if _, ok := grouped[label]; !ok {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], scatterPoint{X: row.Dim1, Y: row.Dim2})
	}

	datasets := make([]chartDataset, 0, len(order))
	for i, label := range order {
		datasets = append(datasets, chartDataset{
			Label:           label,
			Data:            grouped[label],
			BackgroundColor: chartPalette[i%len(chartPalette)],
			PointRadius:     3,
		})
	}

	return renderChart(title, chartConfig{
		Type: "scatter",
		Data: chartData{Datasets: datasets},
		Options: chartOptions{
			Responsive: true,
			Animation:  false,
			Scales: map[string]chartScale{
				"x": {Title: chartScaleTitle{Display: true, Text: "dim1"}},
				"y": {Title: chartScaleTitle{Display: true, Text: "dim2"}},
			},
			Plugins: chartPlugins{Legend: chartLegend{Position: "bottom"}},
		},
	})
}

func labelSelector(colorBy string) (func(embeddings.AnnotatedEmbedding) string, error) {
	switch colorBy {
	case ColorByBatch:
		return func(row embeddings.AnnotatedEmbedding) string { return row.BatchLabel }, nil
	case ColorBySource:
		return func(row embeddings.AnnotatedEmbedding) string { return row.SourceLabel }, nil
	default:
		return nil, fmt.Errorf("unknown projection coloring %q (expected %s or %s)", colorBy, ColorByBatch, ColorBySource)
	}
}

// Chart.js payload mirrors, kept to the fields the templates use.

type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels,omitempty"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label           string `json:"label"`
	Data            any    `json:"data"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	PointRadius     int    `json:"pointRadius,omitempty"`
}

type scatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type chartOptions struct {
	Responsive bool                  `json:"responsive"`
	Animation  bool                  `json:"animation"`
	Scales     map[string]chartScale `json:"scales,omitempty"`
	Plugins    chartPlugins          `json:"plugins"`
}

type chartScale struct {
	Title chartScaleTitle `json:"title"`
}

type chartScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type chartPlugins struct {
	Legend chartLegend `json:"legend"`
}

type chartLegend struct {
	Position string `json:"position"`
}

type chartPageData struct {
	Title      string
	ConfigJSON template.JS
}

func renderChart(title string, config chartConfig) (string, error) {
	payload, err := json.Marshal(config)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := chartPageTemplate.Execute(&buf, chartPageData{
		Title:      title,
		ConfigJSON: template.JS(payload),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var chartPageTemplate = template.Must(template.New("chart-page").Parse(chartPageTemplateHTML))

const chartPageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: sans-serif; background-color: #F1F5F9; color: #0F172A; margin: 2rem; }
    .chart-card { background: #FFFFFF; border: 1px solid #E2E8F0; border-radius: 16px; padding: 1.5rem; box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1); }
    .chart-title { font-size: 1.5rem; font-weight: 700; margin-bottom: 1rem; }
    .chart-canvas { position: relative; height: 560px; }
  </style>
</head>
<body>
  <div class="chart-card">
    <div class="chart-title">{{ .Title }}</div>
    <div class="chart-canvas">
      <canvas id="chart" aria-label="{{ .Title }}" role="img"></canvas>
    </div>
  </div>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    var config = {{ .ConfigJSON }};
    new Chart(document.getElementById('chart'), config);
  </script>
</body>
</html>
`
