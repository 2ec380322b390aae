package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "VITALS_"
	envConfig  = "VITALS_CONFIG"
	listDelim  = ","
	keyLowerIB = "lower_is_better"
	keyBuckets = "metrics_latency_buckets_ms"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if VITALS_CONFIG is set
//  3. env (prefix VITALS_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(envConfig))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file
// layer; env vars still apply.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	base := New(ctx)
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// VITALS_MAX_PANEL_SIZE -> max_panel_size. Underscores are preserved to
	// match the flat koanf tags; list keys are split on commas.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		if key == keyLowerIB || key == keyBuckets {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.LowerIsBetter = normalizeIDs(cfg.LowerIsBetter)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MaxPanelSize < 1 {
		return fmt.Errorf("%w: max_panel_size must be positive, got %d", ErrInvalidConfig, c.MaxPanelSize)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	for i := 1; i < len(c.MetricsLatencyBucketsMS); i++ {
		if c.MetricsLatencyBucketsMS[i] <= c.MetricsLatencyBucketsMS[i-1] {
			return fmt.Errorf("%w: metrics_latency_buckets_ms must be strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Split(v, listDelim)
}

// normalizeIDs splits comma-separated entries, trims whitespace and drops
// empty or repeated ids. Case is kept: polarity lookups are exact.
func normalizeIDs(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	var ids []string
	for _, e := range entries {
		ids = append(ids, strings.Split(e, listDelim)...)
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
