package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mingli/ziwei/chart"
	"github.com/mingli/ziwei/config"
	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/render"
)

var (
	chartDate   string
	chartHour   int
	chartGender string
	chartLabel  string
	chartAsOf   int
	chartFormat string
	chartTrace  bool
)

// ChartCmd represents the chart command
var ChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute and render a natal chart",
	Long: `Compute a Zi Wei Dou Shu natal chart and render it.

The birth moment is given as a Gregorian date plus a 24-hour clock hour;
hours fold into the twelve double-hour branches (23 and 0 both land in
子). Gender steers the decade-limit direction.

Examples:
  ziwei chart --date 1990-06-15 --hour 10 --gender male
  ziwei chart --date 1990-06-15 --hour 10 --gender 女 --label 王小姐
  ziwei chart --date 1990-06-15 --hour 10 --gender m --as-of 2022
  ziwei chart --date 1990-06-15 --hour 10 --gender m --format yaml`,
	RunE: runChartCommand,
}

func init() {
	ChartCmd.Flags().StringVarP(&chartDate, "date", "d", "", "Gregorian birth date (YYYY-MM-DD)")
	ChartCmd.Flags().IntVarP(&chartHour, "hour", "H", -1, "Birth hour on the 24-hour clock (0-23)")
	ChartCmd.Flags().StringVarP(&chartGender, "gender", "g", "", "Gender: 男/male/m or 女/female/f")
	ChartCmd.Flags().StringVarP(&chartLabel, "label", "l", "", "Subject label shown on the chart")
	ChartCmd.Flags().IntVar(&chartAsOf, "as-of", 0, "Year the annual flow is evaluated against (default: config, then current year)")
	ChartCmd.Flags().StringVarP(&chartFormat, "format", "f", "", "Output format: text, json, toml, yaml (default: config)")
	ChartCmd.Flags().BoolVar(&chartTrace, "trace", false, "Record per-stage diagnostics in the result")

	_ = ChartCmd.MarkFlagRequired("date")
	_ = ChartCmd.MarkFlagRequired("hour")
	_ = ChartCmd.MarkFlagRequired("gender")
}

func runChartCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	in, err := buildInput(cfg)
	if err != nil {
		return err
	}

	formatName := chartFormat
	if formatName == "" {
		if render.ShouldOutputJSON(cmd) {
			formatName = "json"
		} else {
			formatName = cfg.GetFormat()
		}
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	opts := []chart.Option{chart.WithVerbosity(verbosity)}
	if chartTrace || cfg.Chart.Trace {
		opts = append(opts, chart.WithTracing())
	}

	engine := chart.NewEngine(opts...)
	result, err := engine.Compute(cmd.Context(), in)
	if err != nil {
		return errors.Wrap(err, "failed to compute chart")
	}

	if err := render.Render(os.Stdout, result, format); err != nil {
		return errors.Wrap(err, "failed to render chart")
	}

	// The typed formats already carry the trace; echo it for the grid.
	if format == render.FormatText && len(result.Trace) > 0 {
		fmt.Fprintln(os.Stderr)
		for _, entry := range result.Trace {
			fmt.Fprintf(os.Stderr, "%-12s %s\n", entry.Stage, entry.Note)
		}
	}
	return nil
}

// buildInput assembles the engine input from flags and config, leaving
// range validation to the engine itself.
func buildInput(cfg *config.Config) (chart.Input, error) {
	born, err := time.Parse("2006-01-02", chartDate)
	if err != nil {
		return chart.Input{}, errors.NewInvalidInputf("bad --date %q, want YYYY-MM-DD", chartDate)
	}

	gender, err := chart.ParseGender(chartGender)
	if err != nil {
		return chart.Input{}, err
	}

	asOf := chartAsOf
	if asOf == 0 {
		asOf = cfg.Chart.AsOfYear
	}
	if asOf == 0 {
		asOf = time.Now().Year()
	}

	return chart.Input{
		Year:     born.Year(),
		Month:    int(born.Month()),
		Day:      born.Day(),
		Hour:     chartHour,
		Gender:   gender,
		Label:    chartLabel,
		AsOfYear: asOf,
	}, nil
}
