package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// consistencyCmd measures brewing repeatability.
var consistencyCmd = &cobra.Command{
	Use:   "consistency [csv-path]",
	Short: "Measure how repeatable your brewing is.",
	Long: `Measure brewing repeatability as a 0-100 consistency score.

Each tracked metric (extraction, TDS, rating) maps its coefficient of
variation onto the score; tight control scores high, scatter scores low.
Ratings get a wider tolerance band than the physical measurements.

Examples:
  # Repeatability across the whole log
  brewmetrics consistency

  # Repeatability for one bean
  brewmetrics consistency --bean house-blend`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConsistency(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run consistency analysis", err)
		}
	},
}
