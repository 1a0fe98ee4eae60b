package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintComparisonResults outputs a bean comparison, dispatching based on the output format configured.
func PrintComparisonResults(result *schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	_, fmtOptFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeComparisonCSVResults(result, cfg, fmtOptFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(result, cfg, fmtOptFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

func writeComparisonCSVResults(result *schema.ComparisonResult, cfg *contract.Config, fmtOptFloat func(*float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"bean_id", "metric", "samples", "mean", "std_dev", "best", "worst", "confidence"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, b := range result.Beans {
				rec := []string{
					b.BeanID,
					string(result.Metric),
					strconv.Itoa(b.SampleCount),
					fmtOptFloat(b.Mean),
					fmtOptFloat(b.StdDev),
					fmtOptFloat(b.Best),
					fmtOptFloat(b.Worst),
					string(b.Confidence),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeComparisonTable generates and writes the human-readable comparison table.
func writeComparisonTable(result *schema.ComparisonResult, cfg *contract.Config, fmtOptFloat func(*float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Bean", "Brews", "Mean", "Std Dev", "Best", "Worst", "Confidence"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxBean := GetMaxTableBeanWidth(cfg)
	var data [][]string
	for _, b := range result.Beans {
		data = append(data, []string{
			truncateBean(b.BeanID, maxBean),
			strconv.Itoa(b.SampleCount),
			fmtOptFloat(b.Mean),
			fmtOptFloat(b.StdDev),
			fmtOptFloat(b.Best),
			fmtOptFloat(b.Worst),
			string(b.Confidence),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Compared %d beans on %s (min sample size: %d, confidence: %s)\n",
		len(result.Beans), result.Metric, result.MinSampleSize, result.Confidence); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
