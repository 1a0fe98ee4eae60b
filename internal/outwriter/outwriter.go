// Package outwriter renders analytics results as tables, CSV, and JSON.
package outwriter

import (
	"os"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints per-brew score results using the configured output format.
func (ow *OutWriter) WriteScores(results []schema.ScoredSample, cfg *contract.Config, duration time.Duration) error {
	return PrintScoreResults(results, cfg, duration)
}

// WriteTrend prints trend analysis results using the configured output format.
func (ow *OutWriter) WriteTrend(result *schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(result, cfg, duration)
}

// WriteComparison prints bean comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(result *schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComparisonResults(result, cfg, duration)
}

// WriteCorrelations prints the correlation matrix using the configured output format.
func (ow *OutWriter) WriteCorrelations(result *schema.CorrelationResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCorrelationResults(result, cfg, duration)
}

// WriteOptimal prints the best recorded brew using the configured output format.
func (ow *OutWriter) WriteOptimal(result *schema.OptimalParams, cfg *contract.Config, duration time.Duration) error {
	return PrintOptimalResults(result, cfg, duration)
}

// WriteConsistency prints repeatability results using the configured output format.
func (ow *OutWriter) WriteConsistency(result *schema.ConsistencyResult, cfg *contract.Config, duration time.Duration) error {
	return PrintConsistencyResults(result, cfg, duration)
}

// WriteSummary prints the high-level overview using the configured output format.
func (ow *OutWriter) WriteSummary(result *schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaryResults(result, cfg, duration)
}

// GetMaxTableBeanWidth calculates the maximum width for bean names in table
// output based on terminal width and table configuration.
func GetMaxTableBeanWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable bean name width
		return 12
	}
	if available > 40 {
		// Maximum bean width to keep rows scannable
		return 40
	}
	return available
}

// truncateBean shortens a bean name to maxWidth runes, keeping the start
// of the name since roaster prefixes carry the most signal.
func truncateBean(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) <= maxWidth {
		return name
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}
