package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenvalley/breakcheck/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./data/breakcheck.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Policy.File)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BREAKCHECK_SERVER_PORT", "9090")
	t.Setenv("BREAKCHECK_DATABASE_PATH", "/var/lib/breakcheck/prod.db")
	t.Setenv("BREAKCHECK_POLICY_FILE", "/etc/breakcheck/policy.json")
	t.Setenv("BREAKCHECK_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/var/lib/breakcheck/prod.db", cfg.Database.Path)
	assert.Equal(t, "/etc/breakcheck/policy.json", cfg.Policy.File)
	assert.Equal(t, "debug", cfg.Log.Level)
}
