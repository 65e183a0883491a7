// Package runtimeconfig loads the small set of knobs the event runtime
// itself needs at startup: worker pool size, the default quiescence
// timeout, an optional Sentry DSN, and an optional metrics listen
// address. Values come from the environment via struct tags, optionally
// overlaid with a YAML file for deployments that prefer file-based
// config.
package runtimeconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
)

// Config holds every environment-tunable setting the runtime reads at
// startup.
type Config struct {
	// WorkerPoolSize bounds how many pipelines across a tree may be
	// actively draining at once.
	WorkerPoolSize int `env:"EVENTRT_WORKER_POOL_SIZE" envDefault:"32"`

	// AwaitExhaustionTimeout is the default timeout callers should pass to
	// AwaitExhaustion when they don't have a more specific deadline in
	// mind.
	AwaitExhaustionTimeout time.Duration `env:"EVENTRT_AWAIT_EXHAUSTION_TIMEOUT" envDefault:"30s"`

	// SentryDSN, if set, enables forwarding HandlingError events to
	// Sentry.
	SentryDSN string `env:"EVENTRT_SENTRY_DSN"`

	// MetricsAddr, if set, is the address the Prometheus metrics handler
	// listens on.
	MetricsAddr string `env:"EVENTRT_METRICS_ADDR" envDefault:":9090"`
}

// Load reads Config from the environment. If path is non-empty, the file
// at path is parsed as YAML first and used to seed defaults that the
// environment may still override, matching the common "file for base
// config, env for per-deployment overrides" layering.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("runtimeconfig: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("runtimeconfig: parsing %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{SetDefaultsForZeroValuesOnly: true}); err != nil {
		return nil, fmt.Errorf("runtimeconfig: parsing environment: %w", err)
	}
	return cfg, nil
}
