// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/benchmerge/benchmerge/internal/composite"
	"github.com/benchmerge/benchmerge/internal/enumeration"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultMinCVar is the reliability threshold applied to composite points
	// when the config omits one.
	defaultMinCVar = 0.01
	// defaultSelectMetric is the metric ranked by select-best when the config
	// omits one.
	defaultSelectMetric = "mean_average_precision"
)

// Config represents the top-level application configuration.
type Config struct {
	Scenarios       []Scenario            `json:"scenarios"`
	OutputDir       string                `json:"outputDir,omitempty"`
	DenyList        string                `json:"denyList,omitempty"`
	MinCVar         *float64              `json:"minCvar,omitempty"`
	DuplicatePolicy string                `json:"duplicatePolicy,omitempty"`
	JoinPolicy      string                `json:"joinPolicy,omitempty"`
	Format          string                `json:"format,omitempty"`
	AxisGroups      *composite.AxisGroups `json:"axisGroups,omitempty"`
	SelectMetric    string                `json:"selectMetric,omitempty"`
	Catalog         string                `json:"catalog,omitempty"`
	LogFile         string                `json:"logFile,omitempty"`
	Debug           bool                  `json:"debug"`
	ConfigPath      string                `json:"-"`
}

// Scenario couples one workflow×method enumeration with the path templates
// that locate its per-run artifacts. Templates use {scenario}, {workflow}
// and {method} placeholders.
type Scenario struct {
	enumeration.Enumeration
	MetricsTemplate    string `json:"metricsTemplate"`
	EmbeddingsTemplate string `json:"embeddingsTemplate,omitempty"`
}

// Sources expands the scenario into its exhaustive per-run artifact list.
func (s Scenario) Sources() []enumeration.Source {
	return s.Expand(s.MetricsTemplate, s.EmbeddingsTemplate)
}

// OutputDirPath returns the directory consolidated artifacts are written to,
// applying a default if not set.
func (c Config) OutputDirPath() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		return dir
	}
	return "results"
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	return "benchmerge.log"
}

// CatalogPath returns the artifact catalog database path, defaulting to a
// file inside the output directory.
func (c Config) CatalogPath() string {
	if path := strings.TrimSpace(c.Catalog); path != "" {
		return path
	}
	return filepath.Join(c.OutputDirPath(), "catalog.db")
}

// MinCVarThreshold returns the composite reliability threshold, falling back
// to the default if not specified.
func (c Config) MinCVarThreshold() float64 {
	if c.MinCVar == nil {
		return defaultMinCVar
	}
	return *c.MinCVar
}

// SelectMetricName returns the metric select-best ranks candidates by.
func (c Config) SelectMetricName() string {
	if name := strings.TrimSpace(c.SelectMetric); name != "" {
		return name
	}
	return defaultSelectMetric
}

// Groups returns the configured composite axis groups, or the study's
// default split when the config omits them.
func (c Config) Groups() composite.AxisGroups {
	if c.AxisGroups != nil {
		return *c.AxisGroups
	}
	return composite.DefaultAxisGroups()
}

// Scenario returns the named scenario. An empty name resolves to the sole
// scenario when exactly one is configured.
func (c Config) Scenario(name string) (Scenario, error) {
	if name == "" {
		if len(c.Scenarios) == 1 {
			return c.Scenarios[0], nil
		}
		return Scenario{}, fmt.Errorf("config defines %d scenarios, one must be named with --scenario", len(c.Scenarios))
	}
	for _, s := range c.Scenarios {
		if s.Enumeration.Scenario == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario %q not found in config", name)
}

// ErrNoConfig reports that no configuration file could be found.
var ErrNoConfig = errors.New("no configuration file found")

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("%w (searched %q and %q)", ErrNoConfig, DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("%w at %q", ErrNoConfig, path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := validateSchema(data); err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	if len(config.Scenarios) == 0 {
		return Config{}, errors.New("config must contain at least one scenario")
	}
	for _, s := range config.Scenarios {
		if err := s.Validate(); err != nil {
			return Config{}, fmt.Errorf("scenario %q: %w", s.Enumeration.Scenario, err)
		}
		if strings.TrimSpace(s.MetricsTemplate) == "" {
			return Config{}, fmt.Errorf("scenario %q: metricsTemplate is required", s.Enumeration.Scenario)
		}
	}
	if config.AxisGroups != nil {
		if err := config.AxisGroups.Validate(); err != nil {
			return Config{}, fmt.Errorf("axisGroups: %w", err)
		}
	}

	return config, nil
}

// validateSchema checks the raw config document against the embedded JSON
// Schema before unmarshaling, so shape errors surface with field names
// instead of zero values.
func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(details, "; "))
}

// configSchema is the JSON Schema the raw config document must satisfy.
const configSchema = `{
  "type": "object",
  "required": ["scenarios"],
  "properties": {
    "scenarios": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["scenario", "workflows", "methods", "baseline", "metricsTemplate"],
        "properties": {
          "scenario": {"type": "string", "minLength": 1},
          "workflows": {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "methods": {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "baseline": {"type": "string", "minLength": 1},
          "sweeps": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 1}},
          "metricsTemplate": {"type": "string", "minLength": 1},
          "embeddingsTemplate": {"type": "string"}
        }
      }
    },
    "outputDir": {"type": "string"},
    "denyList": {"type": "string"},
    "minCvar": {"type": "number", "minimum": 0},
    "duplicatePolicy": {"type": "string", "enum": ["reject", "first", "mean"]},
    "joinPolicy": {"type": "string", "enum": ["keep", "drop"]},
    "format": {"type": "string"},
    "axisGroups": {
      "type": "object",
      "required": ["axis_a", "axis_b"],
      "properties": {
        "axis_a_name": {"type": "string"},
        "axis_b_name": {"type": "string"},
        "axis_a": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "axis_b": {"type": "array", "minItems": 1, "items": {"type": "string"}}
      }
    },
    "selectMetric": {"type": "string"},
    "catalog": {"type": "string"},
    "logFile": {"type": "string"},
    "debug": {"type": "boolean"}
  }
}`
