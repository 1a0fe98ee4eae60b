package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores every brew in the log.
var scoreCmd = &cobra.Command{
	Use:   "score [csv-path]",
	Short: "Rank every brew by its quality score.",
	Long: `Score every recorded brew against the ratio-aware quality model and
print a ranked listing from best to worst.

Each brew's extraction and TDS are compared against the optimal point for
its own brew ratio, so a strong ristretto and a long filter brew are judged
fairly against their respective targets.

Examples:
  # Score the default log
  brewmetrics score

  # Score a specific log, top 10 only
  brewmetrics score mybrews.csv --limit 10

  # Only brews of one bean, exported as CSV
  brewmetrics score --bean ethiopia-yirgacheffe --output csv --output-file scores.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBrewScores(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run score analysis", err)
		}
	},
}
