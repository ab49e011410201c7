package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TASKLANE_ADDR", "")
	t.Setenv("TASKLANE_LOG_LEVEL", "")
	t.Setenv("TASKLANE_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.DBPath, ".tasklane")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TASKLANE_ADDR", ":9090")
	t.Setenv("TASKLANE_LOG_LEVEL", "debug")
	t.Setenv("TASKLANE_DB", "/tmp/test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
}
