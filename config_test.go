package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := configFromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ":3003", cfg.Addr)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, 1000, cfg.MaxRaceRunners)
	assert.Equal(t, 100000.0, cfg.MaxRaceDistance)
	assert.Equal(t, 1000000, cfg.MaxRaceEntries)
	assert.False(t, cfg.DotEnvLoaded)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := configFromEnv(envMap(map[string]string{
		"ADDR":                     ":9000",
		"STORE":                    StoreBadger,
		"BADGER_DIR":               "/tmp/corredores",
		"RACE_MAX_RUNNERS":         "20",
		"RACE_MAX_DISTANCE":        "42.195",
		"RACE_MAX_HISTORY_ENTRIES": "300",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, StoreBadger, cfg.Store)
	assert.Equal(t, "/tmp/corredores", cfg.BadgerDir)
	assert.Equal(t, 20, cfg.MaxRaceRunners)
	assert.Equal(t, 42.195, cfg.MaxRaceDistance)
	assert.Equal(t, 300, cfg.MaxRaceEntries)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"runners":  {"RACE_MAX_RUNNERS": "many"},
		"distance": {"RACE_MAX_DISTANCE": "-1"},
		"entries":  {"RACE_MAX_HISTORY_ENTRIES": "0"},
		"store":    {"STORE": "redis"},
		"postgres": {"STORE": StorePostgres},
	} {
		_, err := configFromEnv(envMap(env))
		assert.Error(t, err, name)
	}
}
