// ABOUTME: Configuration loading and parsing for tidelist
// ABOUTME: Supports YAML files with env var expansion plus container-style env overrides

package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tidelist configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server address configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// RedisConfig holds connection parameters for the key-value store.
type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	DB   int    `yaml:"db"`

	DialTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	DialTimeoutRaw string `yaml:"dial_timeout"`
}

// Addr returns the host:port address for the Redis connection.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a runnable configuration for when no config file exists,
// matching a local Redis on the default port.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: "0.0.0.0:8080",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded,
// duration strings are parsed, and container-style overrides are applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault loads the config file at path if it exists, otherwise
// returns the defaults. Environment overrides apply either way, so a
// container can run with no config file at all.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return finish(Default())
}

// finish applies env overrides, parses durations, and validates.
func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyEnvOverrides applies the container-level environment variables the
// deployment contract promises: REDIS_HOST, REDIS_PORT, REDIS_DB, and PORT.
// They take precedence over file values.
func applyEnvOverrides(cfg *Config) error {
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("parsing REDIS_PORT %q: %w", port, err)
		}
		cfg.Redis.Port = n
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("parsing REDIS_DB %q: %w", db, err)
		}
		cfg.Redis.DB = n
	}
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("parsing PORT %q: %w", port, err)
		}
		cfg.Server.HTTPAddr = "0.0.0.0:" + port
	}
	return nil
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("redis.port %d is out of range", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must not be negative")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func parseDurations(cfg *Config) error {
	if cfg.Redis.DialTimeoutRaw != "" {
		var err error
		cfg.Redis.DialTimeout, err = time.ParseDuration(cfg.Redis.DialTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing dial_timeout %q: %w", cfg.Redis.DialTimeoutRaw, err)
		}
	}
	return nil
}
