package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Output Dir:       %s\n", cfg.OutputDirPath())
	fmt.Fprintf(out, "  Deny List:        %s\n", orNone(cfg.DenyList))
	fmt.Fprintf(out, "  Min CVar:         %g\n", cfg.MinCVarThreshold())
	fmt.Fprintf(out, "  Duplicate Policy: %s\n", orDefault(cfg.DuplicatePolicy, "reject"))
	fmt.Fprintf(out, "  Join Policy:      %s\n", orDefault(cfg.JoinPolicy, "keep"))
	fmt.Fprintf(out, "  Format:           %s\n", orDefault(cfg.Format, "markdown"))
	fmt.Fprintf(out, "  Select Metric:    %s\n", cfg.SelectMetricName())
	fmt.Fprintf(out, "  Catalog:          %s\n", cfg.CatalogPath())
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)

	groups := cfg.Groups()
	fmt.Fprintf(out, "  Axis %s: %s\n", groups.AxisAName, strings.Join(groups.AxisA, ", "))
	fmt.Fprintf(out, "  Axis %s: %s\n", groups.AxisBName, strings.Join(groups.AxisB, ", "))

	fmt.Fprintln(out, "\nScenarios:")
	for _, s := range cfg.Scenarios {
		fmt.Fprintf(out, "  %s: %d workflows × %d methods (baseline %s)\n",
			s.Enumeration.Scenario, len(s.Workflows), len(s.MethodVariants()), s.Baseline)
	}
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(none)"
	}
	return value
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
