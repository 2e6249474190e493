package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mingli/ziwei/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ziwei configuration",
	Long: `Display and manage ziwei configuration settings.

Configuration sources (in order of precedence):
1. Environment variables (ZIWEI_* prefix)
2. Project config (./ziwei.toml or ./config.toml, searched upward)
3. User config (~/.ziwei/config.toml)
4. System config (/etc/ziwei/config.toml)
5. Default values

Examples:
  ziwei config show                  # Show current configuration
  ziwei config show --format json    # Show configuration in JSON format
  ziwei config get output.format     # Get a specific config value
  ziwei config validate              # Validate current configuration
  ziwei config init                  # Write current settings to ~/.ziwei`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current ziwei configuration merged from all sources",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., output.format, chart.as_of_year)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current ziwei configuration is valid",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and which files were checked.

Lists all configuration sources in order of precedence, showing
which files exist and which are missing.`,
	RunE: runConfigWhere,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the user config file",
	Long:  "Persist the merged configuration to ~/.ziwei/config.toml, rotating backups of any previous file.",
	RunE:  runConfigInit,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# ziwei configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# ziwei configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := config.GetViper()
	if !v.IsSet(key) {
		return fmt.Errorf("configuration key %q not found", key)
	}

	fmt.Println(config.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Println("✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	fmt.Println("Configuration cascade (later overrides earlier):")
	fmt.Println("  1. [DEFAULT] Built-in defaults")

	for i, path := range config.CascadePaths() {
		state := "missing"
		if _, err := os.Stat(path); err == nil {
			state = "found"
		}
		fmt.Printf("  %d. [FILE]    %s (%s)\n", i+2, path, state)
	}

	fmt.Printf("  %d. [ENV]     ZIWEI_* environment variables\n", len(config.CascadePaths())+2)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✓ Configuration written to %s\n", config.UserConfigPath())
	return nil
}
