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

// Environment variable names.
const (
	EnvPrefix = "LABOR_"
	EnvFile   = "LABOR_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LABOR_CONFIG is set
//  3. env (prefix LABOR_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LABOR_PROXIMITY_RADIUS_KM -> proximity_radius_km (flat keys, underscores kept).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks fields that would make the service unusable.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxRating <= 0:
		return fmt.Errorf("%w: max_rating must be positive", ErrInvalidConfig)
	case c.ExperienceScale <= 0:
		return fmt.Errorf("%w: experience_scale must be positive", ErrInvalidConfig)
	case c.JobsScale <= 0:
		return fmt.Errorf("%w: jobs_scale must be positive", ErrInvalidConfig)
	case c.ProximityRadiusKm <= 0:
		return fmt.Errorf("%w: proximity_radius_km must be positive", ErrInvalidConfig)
	case c.MetricsRefreshInterval <= 0:
		return fmt.Errorf("%w: metrics_refresh_interval must be positive", ErrInvalidConfig)
	case c.RatingWeight < 0 || c.ExperienceWeight < 0 || c.JobsWeight < 0 || c.ProximityWeight < 0:
		return fmt.Errorf("%w: scoring weights must not be negative", ErrInvalidConfig)
	}
	return nil
}
