// Package config loads runtime configuration for the countz driver.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable the driver reads.
const EnvPrefix = "COUNTZ_"

// Config holds all runtime configuration.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	// Pattern is the substring a field name must contain to be counted.
	Pattern string `koanf:"pattern"`
	// Format selects the report output: "text" or "prometheus".
	Format    string `koanf:"format"`
	Namespace string `koanf:"namespace"`
}

// defaults is the lowest-priority layer.
var defaults = map[string]any{
	"log_level":  "info",
	"log_format": "json",
	"pattern":    "count",
	"format":     "text",
	"namespace":  "countz",
}

// Load reads configuration from (lowest → highest priority):
//  1. Built-in defaults
//  2. YAML file at COUNTZ_CONFIG_FILE (if set)
//  3. COUNTZ_* environment variables
//  4. overrides, typically from command-line flags
func Load(overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults.
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	// Layer 2: optional YAML file.
	if cfgFile := os.Getenv(EnvPrefix + "CONFIG_FILE"); cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", cfgFile, err)
		}
	}

	// Layer 3: environment variables.
	// Transform: "COUNTZ_LOG_LEVEL" → "log_level".
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	// Layer 4: explicit overrides.
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("config: load overrides: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	// Normalise string fields.
	cfg.LogLevel = strings.TrimSpace(strings.ToLower(cfg.LogLevel))
	cfg.LogFormat = strings.TrimSpace(strings.ToLower(cfg.LogFormat))
	cfg.Format = strings.TrimSpace(strings.ToLower(cfg.Format))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []string

	if c.Pattern == "" {
		errs = append(errs, "COUNTZ_PATTERN must not be empty")
	}
	switch c.Format {
	case "text", "prometheus":
	default:
		errs = append(errs, fmt.Sprintf("COUNTZ_FORMAT must be text or prometheus, got %q", c.Format))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("COUNTZ_LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d configuration error(s):\n  - %s", len(errs), strings.Join(errs, "\n  - "))
	}
	return nil
}
