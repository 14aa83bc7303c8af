// internal/pipeline/pipeline.go
// Package pipeline drives the per-scenario consolidation stages. Every stage
// recomputes from the raw per-run artifacts, publishes its consolidated
// output atomically, and indexes the published file in the catalog.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/benchmerge/benchmerge/internal/appconfig"
	"github.com/benchmerge/benchmerge/internal/artifact"
	"github.com/benchmerge/benchmerge/internal/catalog"
	"github.com/benchmerge/benchmerge/internal/composite"
	"github.com/benchmerge/benchmerge/internal/denylist"
	"github.com/benchmerge/benchmerge/internal/embeddings"
	"github.com/benchmerge/benchmerge/internal/enumeration"
	"github.com/benchmerge/benchmerge/internal/logging"
	"github.com/benchmerge/benchmerge/internal/render"
	"github.com/benchmerge/benchmerge/internal/scores"
	"github.com/benchmerge/benchmerge/internal/tables"
	"github.com/benchmerge/benchmerge/internal/util"
)

var published = color.New(color.FgGreen).SprintFunc()

// Pipeline runs consolidation stages for one loaded configuration. Each
// scenario gets its own catalog run the first time a stage publishes for it.
type Pipeline struct {
	cfg  appconfig.Config
	cat  *catalog.Catalog
	runs map[string]string
}

// New opens the artifact catalog and prepares a pipeline for the config.
func New(cfg appconfig.Config) (*Pipeline, error) {
	cat, err := catalog.Open(cfg.CatalogPath())
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, cat: cat, runs: make(map[string]string)}, nil
}

// Close releases the catalog connection.
func (p *Pipeline) Close() error {
	return p.cat.Close()
}

// Catalog exposes the underlying artifact index, for listing commands.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.cat
}

// Tidy builds and publishes the canonical long score table for a scenario.
func (p *Pipeline) Tidy(s appconfig.Scenario) (tables.ScoreTable, error) {
	long, err := p.computeTidy(s)
	if err != nil {
		return nil, err
	}
	path := p.outputPath(s, "scores_long.csv")
	if err := p.publish(s, "tidy", path, artifact.EncodeLongCSV(long), len(long)); err != nil {
		return nil, err
	}
	return long, nil
}

// Pivot builds and publishes the wide results table for a scenario.
func (p *Pipeline) Pivot(s appconfig.Scenario) (tables.PivotTable, error) {
	pivot, err := p.computePivot(s)
	if err != nil {
		return tables.PivotTable{}, err
	}
	path := p.outputPath(s, "scores_wide.csv")
	if err := p.publish(s, "pivot", path, artifact.EncodeWideCSV(pivot), len(pivot.Rows)); err != nil {
		return tables.PivotTable{}, err
	}
	return pivot, nil
}

// WideTable computes the wide results table without publishing it, for
// display surfaces like the interactive browser.
func (p *Pipeline) WideTable(s appconfig.Scenario) (tables.PivotTable, error) {
	return p.computePivot(s)
}

// Results renders the wide results table in the requested format.
func (p *Pipeline) Results(s appconfig.Scenario, format string) (string, error) {
	pivot, err := p.computePivot(s)
	if err != nil {
		return "", err
	}
	return render.ResultsTable(pivot, format)
}

// Composite builds and publishes the two-axis summary points for a scenario.
func (p *Pipeline) Composite(s appconfig.Scenario, minCVar float64) ([]tables.CompositeAxisPoint, error) {
	long, err := p.computeTidy(s)
	if err != nil {
		return nil, err
	}
	points, err := composite.Compute(long, p.cfg.Groups(), minCVar)
	if err != nil {
		return nil, err
	}
	path := p.outputPath(s, "composite.csv")
	if err := p.publish(s, "composite", path, artifact.EncodeCompositeCSV(points), len(points)); err != nil {
		return nil, err
	}
	return points, nil
}

// ConsolidateEmbeddings builds and publishes the consolidated embeddings
// table for a scenario.
func (p *Pipeline) ConsolidateEmbeddings(s appconfig.Scenario) (tables.EmbeddingsTable, error) {
	if s.EmbeddingsTemplate == "" {
		return nil, fmt.Errorf("scenario %q has no embeddingsTemplate", s.Enumeration.Scenario)
	}
	consolidated, err := embeddings.Consolidate(s.Sources())
	if err != nil {
		return nil, err
	}
	path := p.outputPath(s, "embeddings.csv")
	if err := p.publish(s, "embeddings", path, artifact.EncodeEmbeddingsCSV(consolidated), len(consolidated)); err != nil {
		return nil, err
	}
	return consolidated, nil
}

// JoinEmbeddings joins consolidated embeddings with aggregate scores and
// publishes the annotated table.
func (p *Pipeline) JoinEmbeddings(s appconfig.Scenario, policy embeddings.JoinPolicy) ([]embeddings.AnnotatedEmbedding, []string, error) {
	consolidated, err := p.ConsolidateEmbeddings(s)
	if err != nil {
		return nil, nil, err
	}
	pivot, err := p.computePivot(s)
	if err != nil {
		return nil, nil, err
	}
	joined := embeddings.Join(consolidated, pivot, policy)
	path := p.outputPath(s, "embeddings_scored.csv")
	if err := p.publish(s, "join", path, artifact.EncodeJoinedCSV(joined, pivot.Metrics), len(joined)); err != nil {
		return nil, nil, err
	}
	return joined, pivot.Metrics, nil
}

// BarChart publishes the per-metric bar chart, optionally restricted to a
// metric subset for display.
func (p *Pipeline) BarChart(s appconfig.Scenario, metrics []string) (string, error) {
	long, err := p.computeTidy(s)
	if err != nil {
		return "", err
	}
	name := "chart_bar.html"
	if len(metrics) > 0 {
		long = long.SelectMetrics(metrics...)
		name = "chart_bar_subset.html"
	}
	page, err := render.BarChart(long, s.Enumeration.Scenario+" metric scores")
	if err != nil {
		return "", err
	}
	path := p.outputPath(s, name)
	if err := p.publish(s, "chart", path, []byte(page), len(long)); err != nil {
		return "", err
	}
	return path, nil
}

// CompositeChart publishes the two-axis scatter chart.
func (p *Pipeline) CompositeChart(s appconfig.Scenario, minCVar float64) (string, error) {
	points, err := p.Composite(s, minCVar)
	if err != nil {
		return "", err
	}
	groups := p.cfg.Groups()
	page, err := render.CompositeChart(points, groups.AxisAName, groups.AxisBName, s.Enumeration.Scenario+" composite")
	if err != nil {
		return "", err
	}
	path := p.outputPath(s, "chart_composite.html")
	if err := p.publish(s, "chart", path, []byte(page), len(points)); err != nil {
		return "", err
	}
	return path, nil
}

// ProjectionChart publishes the embedding projection chart colored by the
// requested label. Each coloring is its own artifact.
func (p *Pipeline) ProjectionChart(s appconfig.Scenario, colorBy string, policy embeddings.JoinPolicy) (string, error) {
	joined, _, err := p.JoinEmbeddings(s, policy)
	if err != nil {
		return "", err
	}
	return p.publishProjection(s, joined, colorBy)
}

func (p *Pipeline) publishProjection(s appconfig.Scenario, joined []embeddings.AnnotatedEmbedding, colorBy string) (string, error) {
	page, err := render.ProjectionChart(joined, colorBy, s.Enumeration.Scenario+" projection")
	if err != nil {
		return "", err
	}
	path := p.outputPath(s, "chart_projection_"+colorBy+".html")
	if err := p.publish(s, "chart", path, []byte(page), len(joined)); err != nil {
		return "", err
	}
	return path, nil
}

// SelectBest ranks sweep variants by the configured metric and publishes the
// per-method winners.
func (p *Pipeline) SelectBest(s appconfig.Scenario) ([]scores.Selection, error) {
	long, err := p.computeTidy(s)
	if err != nil {
		return nil, err
	}
	selections, err := scores.SelectBest(long, p.cfg.SelectMetricName())
	if err != nil {
		return nil, err
	}
	path := p.outputPath(s, "selected.csv")
	if err := p.publish(s, "select", path, artifact.EncodeSelectionsCSV(selections), len(selections)); err != nil {
		return nil, err
	}
	return selections, nil
}

// Run executes the full stage chain for one scenario in dependency order.
// Embedding stages are skipped when the scenario carries no embeddings
// template.
func (p *Pipeline) Run(s appconfig.Scenario, format string, minCVar float64, joinPolicy embeddings.JoinPolicy) error {
	if _, err := p.Tidy(s); err != nil {
		return err
	}
	pivot, err := p.Pivot(s)
	if err != nil {
		return err
	}

	rendered, err := render.ResultsTable(pivot, format)
	if err != nil {
		return err
	}
	resultsPath := p.outputPath(s, "results."+render.FileExtension(format))
	if err := p.publish(s, "results", resultsPath, []byte(rendered), len(pivot.Rows)); err != nil {
		return err
	}

	if _, err := p.Composite(s, minCVar); err != nil {
		return err
	}
	if _, err := p.BarChart(s, nil); err != nil {
		return err
	}
	if _, err := p.CompositeChart(s, minCVar); err != nil {
		return err
	}

	if s.EmbeddingsTemplate == "" {
		return nil
	}
	joined, _, err := p.JoinEmbeddings(s, joinPolicy)
	if err != nil {
		return err
	}
	for _, colorBy := range []string{render.ColorByBatch, render.ColorBySource} {
		if _, err := p.publishProjection(s, joined, colorBy); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) computeTidy(s appconfig.Scenario) (tables.ScoreTable, error) {
	metricDeny, methodDeny, err := denylist.Load(p.cfg.DenyList)
	if err != nil {
		return nil, err
	}
	raw, err := scores.ReadAllMetrics(s.Sources())
	if err != nil {
		return nil, err
	}
	return scores.BuildTidy(raw, metricDeny, methodDeny), nil
}

func (p *Pipeline) computePivot(s appconfig.Scenario) (tables.PivotTable, error) {
	long, err := p.computeTidy(s)
	if err != nil {
		return tables.PivotTable{}, err
	}
	policy, err := scores.ParseDuplicatePolicy(p.cfg.DuplicatePolicy)
	if err != nil {
		return tables.PivotTable{}, err
	}
	_, methodDeny, err := denylist.Load(p.cfg.DenyList)
	if err != nil {
		return tables.PivotTable{}, err
	}
	return scores.BuildPivot(long, policy, expectedKeys(s.Sources(), methodDeny))
}

// expectedKeys derives the pivot row scaffolding from the enumeration: every
// expected run whose method survives the deny-list gets a row, even when no
// metric of that run does.
func expectedKeys(sources []enumeration.Source, methodDeny denylist.DenyList) []tables.RunKey {
	keys := make([]tables.RunKey, 0, len(sources))
	for _, src := range sources {
		if methodDeny.Denies(src.Key.Method) {
			continue
		}
		keys = append(keys, src.Key)
	}
	return keys
}

func (p *Pipeline) outputPath(s appconfig.Scenario, name string) string {
	return filepath.Join(p.cfg.OutputDirPath(), s.Enumeration.Scenario, name)
}

// publish writes the artifact atomically, indexes it in the catalog, and
// logs the stage line.
func (p *Pipeline) publish(s appconfig.Scenario, stage, path string, data []byte, rows int) error {
	if err := artifact.Write(path, data); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	sum, err := util.Sha256File(path)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}

	scenario := s.Enumeration.Scenario
	runID, ok := p.runs[scenario]
	if !ok {
		run, err := p.cat.BeginRun(scenario)
		if err != nil {
			return err
		}
		runID = run.ID
		p.runs[scenario] = runID
	}
	if err := p.cat.RecordArtifact(runID, stage, path, sum, rows); err != nil {
		return err
	}

	logging.LogStage(stage, scenario, path, rows)
	fmt.Printf("%s %s (%d rows)\n", published("published"), path, rows)
	return nil
}
