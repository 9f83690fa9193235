package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultsLoadAndValidate(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Profile != "standard" {
		t.Errorf("Profile = %q, want standard", cfg.Profile)
	}
	if cfg.BaseID != 1000 {
		t.Errorf("BaseID = %d, want 1000", cfg.BaseID)
	}
	if cfg.Fetch.TimeoutSeconds != 30 || !cfg.Fetch.RespectRobots {
		t.Errorf("Fetch defaults = %+v", cfg.Fetch)
	}
	if cfg.Output.JSONPath != "events.json" {
		t.Errorf("Output.JSONPath = %q", cfg.Output.JSONPath)
	}
}

func TestConfigFileOverlay(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")

	file := `
profile: classic
base_id: 2000
fetch:
  max_retries: 5
`
	if err := v.ReadConfig(strings.NewReader(file)); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Profile != "classic" {
		t.Errorf("Profile = %q, want classic", cfg.Profile)
	}
	if cfg.BaseID != 2000 {
		t.Errorf("BaseID = %d, want 2000", cfg.BaseID)
	}
	if cfg.Fetch.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Fetch.MaxRetries)
	}
	// Untouched keys keep their defaults.
	if cfg.Fetch.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.Fetch.TimeoutSeconds)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown profile", func(c *Config) { c.Profile = "luxury" }},
		{"negative base id", func(c *Config) { c.BaseID = -1 }},
		{"zero base id", func(c *Config) { c.BaseID = 0 }},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }},
		{"zero rate", func(c *Config) { c.Fetch.RequestsPerSecond = 0 }},
		{"negative retries", func(c *Config) { c.Fetch.MaxRetries = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
