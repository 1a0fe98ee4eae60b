package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTrendResults outputs trend analysis, dispatching based on the output format configured.
func PrintTrendResults(result *schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTrendCSVResults(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

func writeTrendCSVResults(result *schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"date", "metric", "value", "rolling_avg"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range result.Points {
				rec := []string{
					p.Date.Format(contract.DateFormat),
					string(result.Metric),
					fmtFloat(p.Value),
					fmtFloat(p.RollingAvg),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeTrendTable generates and writes the human-readable trend table.
func writeTrendTable(result *schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Date", "Value", "Rolling Avg"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range result.Points {
		data = append(data, []string{
			p.Date.Format(contract.DateFormat),
			fmtFloat(p.Value),
			fmtFloat(p.RollingAvg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	direction := getDisplayNameForDirection(result.Direction, cfg.UseEmojis)
	if result.LowConfidence {
		if _, err := fmt.Fprintf(writer, "%s trend for %s over %d days (%d points, low confidence)\n",
			direction, result.Metric, result.WindowDays, result.SampleSize); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(writer, "%s trend for %s over %d days: %+.1f%% (slope %s per brew, %d points)\n",
			direction, result.Metric, result.WindowDays, result.PercentChange, fmtFloat(result.Slope), result.SampleSize); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// getDisplayNameForDirection returns the display name for a trend direction,
// with an emoji prefix when enabled.
func getDisplayNameForDirection(d schema.TrendDirection, useEmojis bool) string {
	if !useEmojis {
		return string(d)
	}
	switch d {
	case schema.TrendImproving:
		return "📈 " + string(d)
	case schema.TrendDeclining:
		return "📉 " + string(d)
	default:
		return "➖ " + string(d)
	}
}
