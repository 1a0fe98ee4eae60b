package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// optimalCmd finds the best recorded brew.
var optimalCmd = &cobra.Command{
	Use:   "optimal [csv-path]",
	Short: "Show the parameters of your best recorded brew.",
	Long: `Find the best-scoring recorded brew and print the parameters that
produced it, so the recipe can be reproduced.

Ties on score fall to the taster rating, then to the most recent brew.
An empty log reports "no data" with low confidence - not an error.

Examples:
  # Best brew overall
  brewmetrics optimal

  # Best brew of one bean
  brewmetrics optimal --bean ethiopia-yirgacheffe`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOptimalBrew(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run optimal search", err)
		}
	},
}
