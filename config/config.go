// Package config loads the ziwei CLI configuration with viper: defaults,
// then system, user, and project files, then ZIWEI_ environment variables.
package config

import "fmt"

// Config represents the ziwei configuration
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Chart  ChartConfig  `mapstructure:"chart"`
}

// OutputConfig configures how charts and logs print
type OutputConfig struct {
	Format   string `mapstructure:"format"`    // Chart output format: text, json, toml, yaml
	Color    bool   `mapstructure:"color"`     // ANSI color in the terminal plate
	LogTheme string `mapstructure:"log_theme"` // Console log theme: gruvbox, everforest
}

// ChartConfig configures derivation defaults applied when the flags are
// not given
type ChartConfig struct {
	AsOfYear int  `mapstructure:"as_of_year"` // Annual flow anchor year: 0 = clock year at run time
	Trace    bool `mapstructure:"trace"`      // Record per-stage notes into results
}

// GetFormat returns the output format (default: text)
func (c *Config) GetFormat() string {
	if c.Output.Format == "" {
		return "text"
	}
	return c.Output.Format
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Output.LogTheme == "" {
		return "everforest"
	}
	return c.Output.LogTheme
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Output: {Format: %s, Color: %t}, Chart: {AsOfYear: %d, Trace: %t}}",
		c.Output.Format, c.Output.Color, c.Chart.AsOfYear, c.Chart.Trace)
}
