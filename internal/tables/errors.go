// internal/tables/errors.go
package tables

import (
	"fmt"
	"strings"
)

// MissingSourceError reports an artifact required by the workflow×method
// enumeration that does not exist. The enumeration is exhaustive, so absence
// is always an error, never a skip.
type MissingSourceError struct {
	Path string
	Key  RunKey
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("missing source artifact %q for workflow=%s method=%s", e.Path, e.Key.Workflow, e.Key.Method)
}

// SchemaMismatchError reports a source table that lacks required columns or
// carries a value that cannot be parsed.
type SchemaMismatchError struct {
	Path    string
	Missing []string
	Reason  string
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("source %q is missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("source %q has an invalid schema: %s", e.Path, e.Reason)
}

// DuplicateKeyError reports a (workflow, method, metric_name) triple observed
// more than once when no aggregation policy resolves duplicates.
type DuplicateKeyError struct {
	Key        RunKey
	MetricName string
	Count      int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate observation for workflow=%s method=%s metric=%s (%d rows) and no aggregation policy configured",
		e.Key.Workflow, e.Key.Method, e.MetricName, e.Count)
}

// UnsupportedFormatError reports an unrecognized output-format token passed
// to a renderer.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q", e.Format)
}
