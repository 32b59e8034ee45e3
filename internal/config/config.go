// Package config holds the application configuration: year range,
// directions, data paths and batch settings, loaded from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"tradenet/internal/network"
)

// Config is the complete application configuration.
type Config struct {
	Years   YearsConfig   `yaml:"years" envconfig:"YEARS"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Batch   BatchConfig   `yaml:"batch" envconfig:"BATCH"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`

	// Directions selects which direction policies each year is analyzed
	// under. Defaults to all three.
	Directions []string `yaml:"directions" envconfig:"DIRECTIONS"`
}

// YearsConfig bounds the batch year range, inclusive on both ends.
type YearsConfig struct {
	From int `yaml:"from" envconfig:"FROM" default:"2013"`
	To   int `yaml:"to" envconfig:"TO" default:"2023"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	// DataDir holds one subdirectory per year with the raw trade CSV.
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	// ReportsDir receives all generated tables and the workbook.
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
}

// BatchConfig controls batch execution.
type BatchConfig struct {
	// MaxConcurrency caps how many years run in parallel.
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" default:"4"`
	// SkipMissing treats an absent year input file as a warning instead of
	// an error.
	SkipMissing bool `yaml:"skip_missing" envconfig:"SKIP_MISSING" default:"true"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text"`
}

const envPrefix = "TRADENET"

// Load reads configuration from an optional YAML file, then applies
// TRADENET_* environment overrides and validates the result. An empty path
// means defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// envconfig fills struct defaults even when no variables are set.
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		// The file just overwrote any values that came from the
		// environment; re-apply those so the environment keeps
		// precedence. Process cannot simply run over cfg again: for
		// every unset variable it re-applies the default tag, which
		// would discard the file's values.
		env := *cfg
		if err := envconfig.Process(envPrefix, &env); err != nil {
			return nil, fmt.Errorf("process environment config: %w", err)
		}
		mergeEnvOverrides(cfg, &env)
	}

	if len(cfg.Directions) == 0 {
		for _, d := range network.AllDirections() {
			cfg.Directions = append(cfg.Directions, d.String())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeEnvOverrides copies every field whose environment variable is
// explicitly set from env into cfg. Unset variables leave the file (or
// default) value in place.
func mergeEnvOverrides(cfg, env *Config) {
	if envSet("YEARS_FROM") {
		cfg.Years.From = env.Years.From
	}
	if envSet("YEARS_TO") {
		cfg.Years.To = env.Years.To
	}
	if envSet("PATHS_DATA_DIR") {
		cfg.Paths.DataDir = env.Paths.DataDir
	}
	if envSet("PATHS_REPORTS_DIR") {
		cfg.Paths.ReportsDir = env.Paths.ReportsDir
	}
	if envSet("BATCH_MAX_CONCURRENCY") {
		cfg.Batch.MaxConcurrency = env.Batch.MaxConcurrency
	}
	if envSet("BATCH_SKIP_MISSING") {
		cfg.Batch.SkipMissing = env.Batch.SkipMissing
	}
	if envSet("LOGGING_LEVEL") {
		cfg.Logging.Level = env.Logging.Level
	}
	if envSet("LOGGING_FORMAT") {
		cfg.Logging.Format = env.Logging.Format
	}
	if envSet("DIRECTIONS") {
		cfg.Directions = env.Directions
	}
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + name)
	return ok
}

// Validate checks the configuration for precondition violations.
func (c *Config) Validate() error {
	if c.Years.From > c.Years.To {
		return fmt.Errorf("invalid year range: from %d after to %d", c.Years.From, c.Years.To)
	}
	if c.Batch.MaxConcurrency < 1 {
		return fmt.Errorf("invalid max_concurrency %d, want at least 1", c.Batch.MaxConcurrency)
	}
	for _, d := range c.Directions {
		if _, err := network.ParseDirection(d); err != nil {
			return fmt.Errorf("invalid directions entry: %w", err)
		}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q, want text or json", c.Logging.Format)
	}
	return nil
}

// ParsedDirections returns the configured directions as typed values.
func (c *Config) ParsedDirections() []network.Direction {
	out := make([]network.Direction, 0, len(c.Directions))
	for _, d := range c.Directions {
		dir, err := network.ParseDirection(d)
		if err != nil {
			continue // Validate rejected these already
		}
		out = append(out, dir)
	}
	return out
}
