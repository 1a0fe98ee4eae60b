package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// correlateCmd computes the parameter/outcome correlation matrix.
var correlateCmd = &cobra.Command{
	Use:   "correlate [csv-path]",
	Short: "Find which brewing parameters move your outcomes.",
	Long: `Compute the pairwise Pearson correlation between every recorded
brewing parameter (grind size, water temperature, brew ratio, bloom time,
total time) and every outcome (extraction, TDS, rating).

Pairs with fewer than 3 joint observations, or a constant series, stay in
the matrix as explicitly undefined - no evidence is not zero correlation.
Pairs clearing |r| >= 0.5 are listed as notable, strongest first.

Results are served from the result cache when the log has not changed.

Examples:
  # Full matrix over the whole log
  brewmetrics correlate

  # Matrix for a single bean, as JSON
  brewmetrics correlate --bean kenya-aa --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCorrelations(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run correlation analysis", err)
		}
	},
}
