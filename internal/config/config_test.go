package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "count", cfg.Pattern)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "countz", cfg.Namespace)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("COUNTZ_LOG_LEVEL", "DEBUG")
	t.Setenv("COUNTZ_LOG_FORMAT", "text")
	t.Setenv("COUNTZ_PATTERN", "total")
	t.Setenv("COUNTZ_FORMAT", "Prometheus")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "total", cfg.Pattern)
	assert.Equal(t, "prometheus", cfg.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pattern: hits\nnamespace: demo\n"), 0o600))
	t.Setenv("COUNTZ_CONFIG_FILE", path)
	t.Setenv("COUNTZ_NAMESPACE", "fromenv")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "hits", cfg.Pattern)
	assert.Equal(t, "fromenv", cfg.Namespace, "env must override the file")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("COUNTZ_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: load file")
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("COUNTZ_PATTERN", "total")

	cfg, err := Load(map[string]any{"pattern": "hits"})
	require.NoError(t, err)

	assert.Equal(t, "hits", cfg.Pattern)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(map[string]any{
		"pattern":    "",
		"format":     "xml",
		"log_format": "yaml",
	})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "3 configuration error(s)")
	assert.Contains(t, msg, "COUNTZ_PATTERN")
	assert.Contains(t, msg, "COUNTZ_FORMAT")
	assert.Contains(t, msg, "COUNTZ_LOG_FORMAT")
}
