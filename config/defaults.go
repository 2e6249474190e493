package config

import "github.com/spf13/viper"

// DefaultDirPermissions is the mode for created config directories
const DefaultDirPermissions = 0o750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Output defaults
	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", true)
	v.SetDefault("output.log_theme", "everforest")

	// Chart derivation defaults
	v.SetDefault("chart.as_of_year", 0) // 0 = resolve to the clock year in the CLI
	v.SetDefault("chart.trace", false)
}

// BindSensitiveEnvVars explicitly binds configuration to environment
// variables that should work even before any config file exists
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("output.log_theme", "ZIWEI_LOG_THEME")
	v.BindEnv("output.format", "ZIWEI_OUTPUT_FORMAT")
}
