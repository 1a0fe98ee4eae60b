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

// PrintOptimalResults outputs the best recorded brew, dispatching based on the output format configured.
func PrintOptimalResults(result *schema.OptimalParams, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOptFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeOptimalCSVResults(result, cfg, fmtFloat, fmtOptFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOptimalText(result, cfg, fmtFloat, fmtOptFloat, duration, w)
		}, "Wrote text")
	}
	return nil
}

func writeOptimalCSVResults(result *schema.OptimalParams, cfg *contract.Config, fmtFloat func(float64) string, fmtOptFloat func(*float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"found",
			"bean_id",
			"brew_id",
			"date",
			"score",
			"extraction_pct",
			"tds_pct",
			"brew_ratio",
			"grind_size",
			"water_temp_c",
			"bloom_time_s",
			"total_time_s",
			"samples",
			"confidence",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			if !result.Found || result.Sample == nil {
				return csvWriter.Write([]string{
					"false", result.BeanID, "", "", "", "", "", "", "", "", "", "",
					strconv.Itoa(result.SampleSize), string(result.Confidence),
				})
			}
			s := result.Sample
			return csvWriter.Write([]string{
				"true",
				s.BeanID,
				s.BrewID,
				s.Timestamp.Format(contract.DateFormat),
				fmtFloat(result.Score),
				fmtFloat(s.ExtractionPct),
				fmtFloat(s.TDSPct),
				fmtFloat(s.BrewRatio),
				fmtOptFloat(s.GrindSize),
				fmtOptFloat(s.WaterTempC),
				fmtOptFloat(s.BloomTimeSec),
				fmtOptFloat(s.TotalTimeSec),
				strconv.Itoa(result.SampleSize),
				string(result.Confidence),
			})
		})
	}, "Wrote CSV")
}

// writeOptimalText displays the best brew in human-readable text format.
func writeOptimalText(result *schema.OptimalParams, cfg *contract.Config, fmtFloat func(float64) string, fmtOptFloat func(*float64) string, duration time.Duration, writer io.Writer) error {
	scope := "all beans"
	if result.BeanID != "" {
		scope = result.BeanID
	}

	if !result.Found || result.Sample == nil {
		if _, err := fmt.Fprintf(writer, "No brews recorded for %s\n", scope); err != nil {
			return err
		}
		return nil
	}

	s := result.Sample
	if _, err := fmt.Fprintf(writer, "Best recorded brew for %s\n", scope); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "=============================\n\n"); err != nil {
		return err
	}

	lines := []struct {
		label string
		value string
	}{
		{"Brew", s.BrewID},
		{"Bean", displayBean(s.BeanID)},
		{"Date", s.Timestamp.Format(contract.DateFormat)},
		{"Score", fmt.Sprintf("%s (%s)", fmtFloat(result.Score), contract.GetColorLabel(result.Score))},
		{"Extraction", fmtFloat(s.ExtractionPct) + "%"},
		{"TDS", fmtFloat(s.TDSPct) + "%"},
		{"Brew ratio", fmtFloat(s.BrewRatio) + " g/L"},
		{"Grind size", fmtOptFloat(s.GrindSize)},
		{"Water temp", fmtOptFloat(s.WaterTempC)},
		{"Bloom time", fmtOptFloat(s.BloomTimeSec)},
		{"Total time", fmtOptFloat(s.TotalTimeSec)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(writer, "%-12s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\nConsidered %d brews (confidence: %s)\n", result.SampleSize, result.Confidence); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
