package cmd

import (
	"github.com/brewkit/brewmetrics/core"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// beansCmd compares beans on one metric.
var beansCmd = &cobra.Command{
	Use:   "beans [csv-path]",
	Short: "Compare beans head to head on one metric.",
	Long: `Compare two or more beans on a single metric, with per-bean mean,
spread, best and worst values.

Every requested bean appears in the result, in request order. Beans with
no recorded brews show explicit "no data" stats instead of silently
disappearing. The overall confidence is driven by the least-brewed bean.

Examples:
  # Compare two beans on the unified score
  brewmetrics beans --beans kenya-aa,ethiopia-yirgacheffe

  # Compare three beans on taster rating
  brewmetrics beans --beans kenya-aa,brazil-santos,house-blend --metric rating`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBeanComparison(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run bean comparison", err)
		}
	},
}
