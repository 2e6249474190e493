package config

import (
	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/lunar"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Output format: empty defaults to text per config.go
	switch c.Output.Format {
	case "", "text", "json", "toml", "yaml":
	default:
		return errors.Newf("output.format must be text, json, toml, or yaml, got %q", c.Output.Format)
	}

	switch c.Output.LogTheme {
	case "", "gruvbox", "everforest":
	default:
		return errors.Newf("output.log_theme must be gruvbox or everforest, got %q", c.Output.LogTheme)
	}

	// As-of year: 0 = resolve to the clock year, otherwise it must sit
	// inside the lunisolar table window.
	if c.Chart.AsOfYear != 0 && (c.Chart.AsOfYear < lunar.MinYear || c.Chart.AsOfYear > lunar.MaxYear) {
		return errors.Newf("chart.as_of_year must be 0 or between %d and %d, got %d",
			lunar.MinYear, lunar.MaxYear, c.Chart.AsOfYear)
	}

	return nil
}
