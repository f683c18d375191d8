package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the configuration for the given command mode ("serve" or
// "cli"). All problems are reported together.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	case "cli":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Dataset.Path == "" {
		problems = append(problems, "dataset.path is required")
	}
	if c.Weather.ForecastDays < 1 || c.Weather.ForecastDays > 16 {
		problems = append(problems, "weather.forecast_days must be between 1 and 16")
	}
	if c.History.MaxDays < 1 {
		problems = append(problems, "history.max_days must be >= 1")
	}
	if c.DataGov.Enabled {
		if c.DataGov.Key == "" {
			problems = append(problems, "datagov.key is required when datagov.enabled is set")
		}
		if c.DataGov.ResourceID == "" {
			problems = append(problems, "datagov.resource_id is required when datagov.enabled is set")
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
