package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "Mindbridge Online School", cfg.School.Name)
	assert.Equal(t, "Spring 2026", cfg.School.CurrentSemester)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "mindbridge:data", cfg.Store.RedisKey)
	assert.Equal(t, 2*time.Second, cfg.Payments.SimulatedDelay)
	assert.Equal(t, "./exports", cfg.Exports.Dir)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", StoreFile)
	t.Setenv("PAYMENT_SIMULATED_DELAY", "150ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.Store.Backend)
	assert.Equal(t, 150*time.Millisecond, cfg.Payments.SimulatedDelay)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, parseDuration("", 2*time.Second))
	assert.Equal(t, 2*time.Second, parseDuration("soon", 2*time.Second))
	assert.Equal(t, 500*time.Millisecond, parseDuration("500ms", 2*time.Second))
}
