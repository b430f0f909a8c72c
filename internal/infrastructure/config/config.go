// Package config loads application configuration from environment
// variables. Analysis behavior stays configurable without flags so the
// same settings apply across commands.
package config

import "github.com/kelseyhightower/envconfig"

// Config holds all convoscope settings.
type Config struct {
	// Analysis behavior.
	Workers        int  `envconfig:"CONVOSCOPE_WORKERS" default:"4"`
	DisablePrivacy bool `envconfig:"CONVOSCOPE_DISABLE_PRIVACY" default:"false"`
	MinStreakDays  int  `envconfig:"CONVOSCOPE_MIN_STREAK_DAYS" default:"3"`

	// Run history database. History is skipped when unset.
	DatabaseURL string `envconfig:"CONVOSCOPE_DATABASE_URL"`
	AuthToken   string `envconfig:"CONVOSCOPE_AUTH_TOKEN"`

	// OTEL metrics export.
	OTELEnabled  bool   `envconfig:"CONVOSCOPE_OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"CONVOSCOPE_OTEL_ENDPOINT"`
	OTELInsecure bool   `envconfig:"CONVOSCOPE_OTEL_INSECURE" default:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HistoryEnabled reports whether run history persistence is configured.
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}
