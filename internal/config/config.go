// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`
	// DedupeSize bounds the registration idempotency-key cache.
	DedupeSize int `koanf:"dedupe_size"`
	// MaxBodyBytes caps the size of a registration request body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// Scoring weights. They are expected to sum to 1.
	RatingWeight     float64 `koanf:"rating_weight"`
	ExperienceWeight float64 `koanf:"experience_weight"`
	JobsWeight       float64 `koanf:"jobs_weight"`
	ProximityWeight  float64 `koanf:"proximity_weight"`

	// Scoring normalizers.
	MaxRating         float64 `koanf:"max_rating"`
	ExperienceScale   float64 `koanf:"experience_scale"`
	JobsScale         float64 `koanf:"jobs_scale"`
	ProximityRadiusKm float64 `koanf:"proximity_radius_km"`

	// Metrics exposition.
	MetricsEnabled          bool              `koanf:"metrics_enabled"`
	MetricsNamespace        string            `koanf:"metrics_namespace"`
	MetricsSubsystem        string            `koanf:"metrics_subsystem"`
	MetricsPrefix           string            `koanf:"metrics_prefix"`
	MetricsLabels           map[string]string `koanf:"metrics_labels"`
	MetricsRefreshInterval  time.Duration     `koanf:"metrics_refresh_interval"`
	MetricsLatencyBucketsMs []float64         `koanf:"metrics_latency_buckets_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":8000",
		DedupeSize:   50_000,
		MaxBodyBytes: 1 << 20,

		RatingWeight:     0.4,
		ExperienceWeight: 0.2,
		JobsWeight:       0.2,
		ProximityWeight:  0.2,

		MaxRating:         5,
		ExperienceScale:   10,
		JobsScale:         50,
		ProximityRadiusKm: 50,

		MetricsEnabled:         true,
		MetricsNamespace:       "laborconnect",
		MetricsSubsystem:       "matching",
		MetricsRefreshInterval: 10 * time.Second,
	}
}
