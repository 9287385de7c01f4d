// Package config handles application configuration from environment variables
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/stridelab/stride/workout"
)

// Config holds all application configuration
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Athlete AthleteConfig `envPrefix:"ATHLETE_"`
}

// AthleteConfig holds the default athlete profile used when a request does
// not carry its own context.
type AthleteConfig struct {
	EasyPace      string `env:"EASY_PACE"`
	ThresholdPace string `env:"THRESHOLD_PACE"`
	IntervalPace  string `env:"INTERVAL_PACE"`
	MarathonPace  string `env:"MARATHON_PACE"`
	HRMax         int    `env:"HRMAX"`
	Equipment     string `env:"EQUIPMENT"`
	Level         string `env:"LEVEL" envDefault:"intermediate"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Athlete.HRMax != 0 && (cfg.Athlete.HRMax < 120 || cfg.Athlete.HRMax > 220) {
		return nil, fmt.Errorf("ATHLETE_HRMAX must be between 120-220, got %d", cfg.Athlete.HRMax)
	}
	return cfg, nil
}

// HasDatabase returns true if a database is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// Paces builds the pace table from the configured athlete profile. Blank
// entries stay zero and the resolver falls through to its defaults.
func (c *Config) Paces() workout.PaceTable {
	return workout.PaceTable{
		Easy:      paceEntry(c.Athlete.EasyPace),
		Threshold: paceEntry(c.Athlete.ThresholdPace),
		Interval:  paceEntry(c.Athlete.IntervalPace),
		Marathon:  paceEntry(c.Athlete.MarathonPace),
	}
}

// Context builds the default resolution context from the athlete profile.
func (c *Config) Context() workout.Context {
	return workout.Context{
		Paces:     c.Paces(),
		Equipment: c.Athlete.Equipment,
		Level:     c.Athlete.Level,
	}
}

func paceEntry(s string) workout.PaceEntry {
	if s == "" {
		return workout.PaceEntry{}
	}
	return workout.PaceEntry{Raw: s}
}
