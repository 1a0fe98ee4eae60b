package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
)

// PrintSummaryResults outputs the high-level overview, dispatching based on the output format configured.
func PrintSummaryResults(result *schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	_, fmtOptFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(result, cfg, fmtOptFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(result, cfg, fmtOptFloat, duration, w)
		}, "Wrote text")
	}
	return nil
}

func writeSummaryCSVResults(result *schema.SummaryResult, cfg *contract.Config, fmtOptFloat func(*float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"total_brews",
			"unique_beans",
			"date_range_days",
			"avg_extraction",
			"avg_tds",
			"avg_rating",
			"best_bean",
			"most_brewed_bean",
			"consistency_score",
			"rating_trend",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return csvWriter.Write([]string{
				strconv.Itoa(result.TotalBrews),
				strconv.Itoa(result.UniqueBeans),
				strconv.Itoa(result.DateRangeDays),
				fmtOptFloat(result.AvgExtraction),
				fmtOptFloat(result.AvgTDS),
				fmtOptFloat(result.AvgRating),
				result.BestBean,
				result.MostBrewedBean,
				fmtOptFloat(result.ConsistencyScore),
				string(result.RatingTrend),
			})
		})
	}, "Wrote CSV")
}

// withPercent appends a percent sign to a formatted optional value,
// leaving the "n/a" marker unadorned.
func withPercent(fmtOptFloat func(*float64) string, v *float64) string {
	if v == nil {
		return fmtOptFloat(v)
	}
	return fmtOptFloat(v) + "%"
}

// writeSummaryText displays the overview in human-readable text format.
func writeSummaryText(result *schema.SummaryResult, cfg *contract.Config, fmtOptFloat func(*float64) string, duration time.Duration, writer io.Writer) error {
	title := "Brew Log Summary"
	if cfg.UseEmojis {
		title = "☕ " + title
	}
	if _, err := fmt.Fprintf(writer, "%s\n================\n\n", title); err != nil {
		return err
	}

	lines := []struct {
		label string
		value string
	}{
		{"Total brews", strconv.Itoa(result.TotalBrews)},
		{"Unique beans", strconv.Itoa(result.UniqueBeans)},
		{"Date range", fmt.Sprintf("%d days", result.DateRangeDays)},
		{"Avg extraction", withPercent(fmtOptFloat, result.AvgExtraction)},
		{"Avg TDS", withPercent(fmtOptFloat, result.AvgTDS)},
		{"Avg rating", fmtOptFloat(result.AvgRating)},
		{"Best bean", displayBean(result.BestBean)},
		{"Most brewed", displayBean(result.MostBrewedBean)},
		{"Consistency", fmtOptFloat(result.ConsistencyScore)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(writer, "%-16s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	if result.RatingTrend != "" {
		if _, err := fmt.Fprintf(writer, "%-16s %s\n", "Rating trend:", getDisplayNameForDirection(result.RatingTrend, cfg.UseEmojis)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
