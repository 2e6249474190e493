package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mingli/ziwei/cmd/ziwei/commands"
	"github.com/mingli/ziwei/config"
	"github.com/mingli/ziwei/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ziwei",
	Short: "ziwei - Zi Wei Dou Shu natal chart engine",
	Long: `ziwei - Zi Wei Dou Shu (紫微斗数) natal chart engine.

Computes a deterministic 12-palace natal chart from a Gregorian birth
date, hour, and gender: star placements, stem/branch calendrics,
five-element bureau, decade limits, annual flow, and the four
transformations.

Available commands:
  chart   - Compute and render a natal chart
  config  - Manage ziwei configuration
  version - Show version information

Examples:
  ziwei chart --date 1990-06-15 --hour 10 --gender male
  ziwei chart --date 1990-06-15 --hour 10 --gender 女 --format json
  ziwei config show                # Show current configuration
  ziwei config get output.format   # Get a single config value`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json")

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger.SetTheme(cfg.GetLogTheme())
		if !cfg.Output.Color {
			pterm.DisableColor()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable output: JSON logs and JSON results")

	rootCmd.AddCommand(commands.ChartCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
