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

// PrintConsistencyResults outputs repeatability results, dispatching based on the output format configured.
func PrintConsistencyResults(result *schema.ConsistencyResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeConsistencyCSVResults(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeConsistencyTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// fmtCV renders a coefficient of variation with enough precision to be
// meaningful; CV values for a dialed-in brewer sit well below 0.1.
func fmtCV(cv *float64) string {
	if cv == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *cv)
}

func writeConsistencyCSVResults(result *schema.ConsistencyResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"bean_id", "metric", "std_dev", "cv", "score", "band", "samples"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, m := range result.Metrics {
				rec := []string{
					result.BeanID,
					string(m.Metric),
					fmtCV(m.StdDev),
					fmtCV(m.CV),
					fmtFloat(result.Score),
					string(result.Band),
					fmt.Sprintf("%d", result.SampleSize),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeConsistencyTable generates and writes the human-readable consistency table.
func writeConsistencyTable(result *schema.ConsistencyResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Metric", "Std Dev", "CV"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range result.Metrics {
		data = append(data, []string{
			string(m.Metric),
			fmtCV(m.StdDev),
			fmtCV(m.CV),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	scope := "all beans"
	if result.BeanID != "" {
		scope = result.BeanID
	}
	if _, err := fmt.Fprintf(writer, "Consistency for %s: %s (%s) across %d brews\n",
		scope, fmtFloat(result.Score), contract.GetBandLabel(result.Band, cfg.UseColors), result.SampleSize); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
