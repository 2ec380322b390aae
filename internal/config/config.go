// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file and VITALS_ env vars.
// - Errors wrap this package's sentinels so callers can use errors.Is.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
	// MaxPanelSize caps the number of readings accepted in one panel request.
	MaxPanelSize int `koanf:"max_panel_size"`
	// LowerIsBetter replaces the built-in polarity table when non-empty.
	// Entries may be a YAML list or comma-separated strings.
	LowerIsBetter []string `koanf:"lower_is_better"`
	// MetricsNamespace prefixes every Prometheus metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
	// MetricsSubsystem is the second metric name segment.
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	// MetricsLatencyBucketsMS overrides the request duration buckets when
	// non-empty. Values must be strictly increasing.
	MetricsLatencyBucketsMS []float64 `koanf:"metrics_latency_buckets_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MaxPanelSize:     200,
		LowerIsBetter:    nil,
		MetricsNamespace: "vitals",
		MetricsSubsystem: "classifier",
	}
}
