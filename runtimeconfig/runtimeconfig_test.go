package runtimeconfig_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/eventrt/runtimeconfig"
)

func TestLoadUsesDefaultsWithNoEnvOrFile(t *testing.T) {
	cfg, err := runtimeconfig.Load("")
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.WorkerPoolSize)
	assert.Equal(t, 30*time.Second, cfg.AwaitExhaustionTimeout)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("EVENTRT_WORKER_POOL_SIZE", "64")
	t.Setenv("EVENTRT_SENTRY_DSN", "https://example.invalid/1")

	cfg, err := runtimeconfig.Load("")
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.WorkerPoolSize)
	assert.Equal(t, "https://example.invalid/1", cfg.SentryDSN)
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := runtimeconfig.Load(os.TempDir() + "/eventrt-does-not-exist.yaml")
	assert.Error(t, err)
}
