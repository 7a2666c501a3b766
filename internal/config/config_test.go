// ABOUTME: Tests for configuration loading, env expansion, overrides, and validation
// ABOUTME: Uses temp files and t.Setenv to exercise the full load path

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tidelist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "localhost:9090"
redis:
  host: "redis.internal"
  port: 6380
  db: 2
  dial_timeout: "5s"
logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Defaults(t *testing.T) {
	// A file setting only one section leaves the rest at defaults
	path := writeConfig(t, `
logging:
  level: "warn"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_TIDELIST_HOST", "expanded.example")

	path := writeConfig(t, `
redis:
  host: "${TEST_TIDELIST_HOST}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "expanded.example", cfg.Redis.Host)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "override.example")
	t.Setenv("REDIS_PORT", "7000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PORT", "9999")

	path := writeConfig(t, `
redis:
  host: "from-file"
  port: 6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override.example", cfg.Redis.Host)
	assert.Equal(t, 7000, cfg.Redis.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddr)
}

func TestLoad_BadEnvOverride(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")

	path := writeConfig(t, `
redis:
  host: "localhost"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
redis:
  dial_timeout: "banana"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing http addr", func(c *Config) { c.Server.HTTPAddr = "" }},
		{"missing redis host", func(c *Config) { c.Redis.Host = "" }},
		{"port too low", func(c *Config) { c.Redis.Port = 0 }},
		{"port too high", func(c *Config) { c.Redis.Port = 70000 }},
		{"negative db", func(c *Config) { c.Redis.DB = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
