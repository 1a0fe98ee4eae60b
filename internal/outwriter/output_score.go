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

// PrintScoreResults outputs scored brews, dispatching based on the output format configured.
// The slice is expected to be sorted by score descending already.
func PrintScoreResults(results []schema.ScoredSample, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScoreJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScoreCSVResults(results, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

func writeScoreJSONResults(results []schema.ScoredSample, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForScores(w, results)
	}, "Wrote JSON")
}

func writeScoreCSVResults(results []schema.ScoredSample, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"brew_id",
			"bean_id",
			"date",
			"extraction_pct",
			"tds_pct",
			"brew_ratio",
			"score",
			"label",
			"zone",
			"distance",
			"grad_extraction",
			"grad_tds",
			"clamped",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForScores(csvWriter, results, fmtFloat)
		})
	}, "Wrote CSV")
}

// writeScoreTable generates and writes the human-readable score table.
func writeScoreTable(results []schema.ScoredSample, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Brew", "Bean", "Date", "Score", "Label", "Zone"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxBean := GetMaxTableBeanWidth(cfg)
	var data [][]string
	clamped := 0
	for i, r := range results {
		if r.Result.Clamped {
			clamped++
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Sample.BrewID,
			truncateBean(displayBean(r.Sample.BeanID), maxBean),
			r.Sample.Timestamp.Format(contract.DateFormat),
			fmtFloat(r.Result.Score),
			contract.GetColorLabel(r.Result.Score),
			r.Sample.Zone,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d brews (%d clamped before scoring)\n", len(results), clamped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScores writes scored brews in CSV format.
func writeCSVResultsForScores(w *csv.Writer, results []schema.ScoredSample, fmtFloat func(float64) string) error {
	for i, r := range results {
		rec := []string{
			strconv.Itoa(i + 1),
			r.Sample.BrewID,
			r.Sample.BeanID,
			r.Sample.Timestamp.Format(contract.DateFormat),
			fmtFloat(r.Sample.ExtractionPct),
			fmtFloat(r.Sample.TDSPct),
			fmtFloat(r.Sample.BrewRatio),
			fmtFloat(r.Result.Score),
			contract.GetPlainLabel(r.Result.Score),
			r.Sample.Zone,
			fmtFloat(r.Result.Distance),
			fmtFloat(r.Result.GradE),
			fmtFloat(r.Result.GradT),
			strconv.FormatBool(r.Result.Clamped),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForScores writes scored brews in JSON format.
func writeJSONResultsForScores(w io.Writer, results []schema.ScoredSample) error {
	type JSONScoreResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ScoredSample
	}

	output := make([]JSONScoreResult, len(results))
	for i, r := range results {
		output[i] = JSONScoreResult{
			Rank:         i + 1,
			Label:        contract.GetPlainLabel(r.Result.Score),
			ScoredSample: r,
		}
	}

	return writeJSON(w, output)
}
