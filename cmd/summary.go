package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints the high-level overview of the log.
var summaryCmd = &cobra.Command{
	Use:   "summary [csv-path]",
	Short: "Print a one-screen overview of the whole brew log.",
	Long: `Condense the whole brew log into a single overview: brew volume,
bean variety, average measurements, the best and most brewed beans,
overall consistency, and the rating trend over the last 30 days.

Examples:
  # Overview of the default log
  brewmetrics summary

  # Overview of a specific log as JSON
  brewmetrics summary mybrews.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}
