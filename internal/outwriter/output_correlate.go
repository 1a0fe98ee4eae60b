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

// PrintCorrelationResults outputs the correlation matrix, dispatching based on the output format configured.
func PrintCorrelationResults(result *schema.CorrelationResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCorrelationCSVResults(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationTable(result, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// fmtCorrelation renders a correlation coefficient with fixed precision.
// Coefficients always use 3 decimals regardless of the configured precision,
// since the moderate/strong thresholds live in the second decimal place.
func fmtCorrelation(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *r)
}

func writeCorrelationCSVResults(result *schema.CorrelationResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"parameter", "outcome", "r", "samples", "strength"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, c := range result.Cells {
				rec := []string{
					string(c.Parameter),
					string(c.Outcome),
					fmtCorrelation(c.R),
					strconv.Itoa(c.SampleSize),
					correlationStrengthText(c.R),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeCorrelationTable generates and writes the human-readable correlation matrix.
func writeCorrelationTable(result *schema.CorrelationResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Parameter", "Outcome", "R", "Samples", "Strength"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range result.Cells {
		data = append(data, []string{
			string(c.Parameter),
			string(c.Outcome),
			fmtCorrelation(c.R),
			strconv.Itoa(c.SampleSize),
			correlationStrengthText(c.R),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.Notable) == 0 {
		if _, err := fmt.Fprintf(writer, "No notable correlations (|r| >= %.1f)\n", 0.5); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(writer, "Notable correlations:\n"); err != nil {
			return err
		}
		for _, n := range result.Notable {
			if _, err := fmt.Fprintf(writer, "  %s vs %s: r=%.3f (%s)\n", n.Parameter, n.Outcome, n.R, n.Strength); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// correlationStrengthText returns the strength band text for a coefficient,
// or a dash when the pair is undefined or below the moderate threshold.
func correlationStrengthText(r *float64) string {
	if r == nil {
		return "-"
	}
	strength, ok := schema.StrengthForCorrelation(*r)
	if !ok {
		return "-"
	}
	return string(strength)
}
