// internal/enumeration/enumeration.go
// Package enumeration expands the externally fixed workflow×method
// enumeration into the exhaustive list of expected per-run artifacts.
//
// The enumeration is an explicit configuration object handed to the
// consolidation engine, never ambient state, so the engine stays testable
// with arbitrary small enumerations. Every expanded source is expected to
// exist; absence downstream is a MissingSourceError, not a skip.
package enumeration

import (
	"fmt"
	"strings"

	"github.com/benchmerge/benchmerge/internal/tables"
)

// Enumeration is the fixed set of runs for one scenario: every method is
// evaluated under every workflow, plus one baseline run per workflow.
type Enumeration struct {
	Scenario  string         `json:"scenario"`
	Workflows []string       `json:"workflows"`
	Methods   []string       `json:"methods"`
	Baseline  string         `json:"baseline"`
	Sweeps    map[string]int `json:"sweeps,omitempty"`
}

// Source is one expected per-run artifact pair.
type Source struct {
	Scenario       string
	Key            tables.RunKey
	Baseline       bool
	MetricsPath    string
	EmbeddingsPath string
}

// Validate checks the enumeration is usable before any expansion happens.
func (e Enumeration) Validate() error {
	if e.Scenario == "" {
		return fmt.Errorf("enumeration must name a scenario")
	}
	if len(e.Workflows) == 0 {
		return fmt.Errorf("enumeration must list at least one workflow")
	}
	if len(e.Methods) == 0 {
		return fmt.Errorf("enumeration must list at least one method")
	}
	if e.Baseline == "" {
		return fmt.Errorf("enumeration must name a baseline")
	}
	for method, count := range e.Sweeps {
		if count <= 0 {
			return fmt.Errorf("sweep count for method %q must be positive, got %d", method, count)
		}
	}
	return nil
}

// MethodVariants resolves the effective method list: a method with a sweep
// entry expands into indexed variants (harmonizing with how the upstream
// parameter sweep names its runs), all other methods pass through unchanged.
func (e Enumeration) MethodVariants() []string {
	variants := make([]string, 0, len(e.Methods))
	for _, method := range e.Methods {
		count, swept := e.Sweeps[method]
		if !swept {
			variants = append(variants, method)
			continue
		}
		for i := 0; i < count; i++ {
			variants = append(variants, fmt.Sprintf("%s_%02d", method, i))
		}
	}
	return variants
}

// Expand produces the deterministic, exhaustive source list: for each
// workflow, the baseline run followed by every method variant, in
// configuration order. Path templates use {scenario}, {workflow} and
// {method} placeholders.
func (e Enumeration) Expand(metricsTemplate, embeddingsTemplate string) []Source {
	methods := e.MethodVariants()
	sources := make([]Source, 0, len(e.Workflows)*(len(methods)+1))
	for _, workflow := range e.Workflows {
		sources = append(sources, e.source(workflow, e.Baseline, true, metricsTemplate, embeddingsTemplate))
		for _, method := range methods {
			sources = append(sources, e.source(workflow, method, false, metricsTemplate, embeddingsTemplate))
		}
	}
	return sources
}

func (e Enumeration) source(workflow, method string, baseline bool, metricsTemplate, embeddingsTemplate string) Source {
	return Source{
		Scenario:       e.Scenario,
		Key:            tables.RunKey{Workflow: workflow, Method: method},
		Baseline:       baseline,
		MetricsPath:    expandTemplate(metricsTemplate, e.Scenario, workflow, method),
		EmbeddingsPath: expandTemplate(embeddingsTemplate, e.Scenario, workflow, method),
	}
}

func expandTemplate(template, scenario, workflow, method string) string {
	if template == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"{scenario}", scenario,
		"{workflow}", workflow,
		"{method}", method,
	)
	return replacer.Replace(template)
}
