package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/technical-communicator/central-florida-events/internal/normalize"
)

// Config holds the run settings. Values resolve flag > env (CFL_EVENTS_*)
// > config file (~/.cfl-events/config.yaml) > defaults.
type Config struct {
	// Profile names the price threshold profile ("standard" or "classic").
	Profile string `yaml:"profile" mapstructure:"profile"`

	// BaseID is the first event id assigned in a run.
	BaseID int `yaml:"base_id" mapstructure:"base_id"`

	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// FetchConfig tunes the HTTP fetcher.
type FetchConfig struct {
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// OutputConfig names the default artifact paths. Empty means "skip".
type OutputConfig struct {
	JSONPath   string `yaml:"json_path" mapstructure:"json_path"`
	ModulePath string `yaml:"module_path" mapstructure:"module_path"`
	CSVPath    string `yaml:"csv_path" mapstructure:"csv_path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Profile: normalize.ProfileStandard.Name,
		BaseID:  1000,
		Fetch: FetchConfig{
			TimeoutSeconds:    30,
			RequestsPerSecond: 0.66,
			MaxRetries:        2,
			RespectRobots:     true,
		},
		Output: OutputConfig{
			JSONPath: "events.json",
		},
	}
}

// SetDefaults registers the defaults with viper so env vars and config
// files overlay them key by key.
func SetDefaults(v *viper.Viper) {
	cfg := DefaultConfig()
	v.SetDefault("profile", cfg.Profile)
	v.SetDefault("base_id", cfg.BaseID)
	v.SetDefault("fetch.timeout_seconds", cfg.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.requests_per_second", cfg.Fetch.RequestsPerSecond)
	v.SetDefault("fetch.max_retries", cfg.Fetch.MaxRetries)
	v.SetDefault("fetch.respect_robots", cfg.Fetch.RespectRobots)
	v.SetDefault("output.json_path", cfg.Output.JSONPath)
	v.SetDefault("output.module_path", cfg.Output.ModulePath)
	v.SetDefault("output.csv_path", cfg.Output.CSVPath)
}

// Load materializes the resolved configuration and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if _, ok := normalize.ProfileByName(c.Profile); !ok {
		return fmt.Errorf("unknown price profile %q (want %q or %q)",
			c.Profile, normalize.ProfileStandard.Name, normalize.ProfileClassic.Name)
	}
	// Zero means "unset" to the pipeline, so a configured base id must be
	// positive.
	if c.BaseID <= 0 {
		return fmt.Errorf("base_id must be positive, got %d", c.BaseID)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch.requests_per_second must be positive, got %v", c.Fetch.RequestsPerSecond)
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries must be non-negative, got %d", c.Fetch.MaxRetries)
	}
	return nil
}
