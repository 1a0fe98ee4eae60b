package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// trendCmd runs the trend analysis for one metric.
var trendCmd = &cobra.Command{
	Use:   "trend [csv-path]",
	Short: "Show whether a metric is improving over time.",
	Long: `Compute the trend of one metric over a trailing window of days.

Each brew inside the window becomes one chronological observation, smoothed
with a rolling average. The trend direction honors per-metric polarity:
a falling grind setting is just movement, a falling score is a decline.

Fewer than 3 observations yields a stable, low-confidence result instead
of an error.

Examples:
  # Is the unified score improving over the last 30 days?
  brewmetrics trend

  # Extraction trend over a quarter
  brewmetrics trend --metric extraction_pct --window 90

  # Rating trend for a single bean
  brewmetrics trend --metric rating --bean kenya-aa`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBrewTrend(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
	},
}
