// Package parquet provides data structures and functions for exporting scored
// brew history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/brewkit/brewmetrics/schema"
)

// BrewRecord represents one scored brew in the export.
// This struct maps to the brew_history database table.
type BrewRecord struct {
	// BrewID is the stable identifier for the brew
	BrewID string `parquet:"brew_id,snappy"`

	// BeanID identifies the bean the brew was made with (nullable)
	BeanID *string `parquet:"bean_id,optional,snappy"`

	// BrewTime is when the brew happened (stored as TIMESTAMP with nanosecond precision)
	BrewTime time.Time `parquet:"brew_time,snappy"`

	// ExtractionPct is the extraction yield in percent
	ExtractionPct float64 `parquet:"extraction_pct,snappy"`

	// TDSPct is the total dissolved solids concentration in percent
	TDSPct float64 `parquet:"tds_pct,snappy"`

	// BrewRatio is the coffee dose per liter of brew water in g/L
	BrewRatio float64 `parquet:"brew_ratio,snappy"`

	// Rating is the taster rating (nullable)
	Rating *float64 `parquet:"rating,optional,snappy"`

	// GrindSize is the grinder setting (nullable)
	GrindSize *float64 `parquet:"grind_size,optional,snappy"`

	// WaterTempC is the brew water temperature in Celsius (nullable)
	WaterTempC *float64 `parquet:"water_temp_c,optional,snappy"`

	// BloomTimeSec is the bloom duration in seconds (nullable)
	BloomTimeSec *float64 `parquet:"bloom_time_s,optional,snappy"`

	// TotalTimeSec is the total brew duration in seconds (nullable)
	TotalTimeSec *float64 `parquet:"total_time_s,optional,snappy"`

	// Score is the unified quality score (0-100)
	Score float64 `parquet:"score,snappy"`

	// Distance is the normalized distance from the optimal point
	Distance float64 `parquet:"distance,snappy"`

	// GradExtraction is the score sensitivity to extraction changes
	GradExtraction float64 `parquet:"grad_extraction,snappy"`

	// GradTDS is the score sensitivity to TDS changes
	GradTDS float64 `parquet:"grad_tds,snappy"`

	// OptimalExtraction is the best reachable extraction at this ratio
	OptimalExtraction float64 `parquet:"optimal_extraction,snappy"`

	// OptimalTDS is the best reachable TDS at this ratio
	OptimalTDS float64 `parquet:"optimal_tds,snappy"`

	// Clamped reports that the raw measurements were clamped before scoring
	Clamped bool `parquet:"clamped,snappy"`

	// Zone is the brewing control chart zone label
	Zone string `parquet:"zone,snappy"`
}

// ConvertScoredSamples converts history rows to their Parquet representation.
func ConvertScoredSamples(scored []schema.ScoredSample) []BrewRecord {
	records := make([]BrewRecord, 0, len(scored))
	for i := range scored {
		s := &scored[i].Sample
		r := &scored[i].Result

		record := BrewRecord{
			BrewID:            s.BrewID,
			BrewTime:          s.Timestamp,
			ExtractionPct:     s.ExtractionPct,
			TDSPct:            s.TDSPct,
			BrewRatio:         s.BrewRatio,
			Rating:            s.Rating,
			GrindSize:         s.GrindSize,
			WaterTempC:        s.WaterTempC,
			BloomTimeSec:      s.BloomTimeSec,
			TotalTimeSec:      s.TotalTimeSec,
			Score:             r.Score,
			Distance:          r.Distance,
			GradExtraction:    r.GradE,
			GradTDS:           r.GradT,
			OptimalExtraction: r.Optimal.Extraction,
			OptimalTDS:        r.Optimal.TDS,
			Clamped:           r.Clamped,
			Zone:              s.Zone,
		}
		if s.BeanID != "" {
			beanID := s.BeanID
			record.BeanID = &beanID
		}
		records = append(records, record)
	}
	return records
}

// WriteBrewRecordsParquet writes a slice of BrewRecord structs to a Parquet file.
func WriteBrewRecordsParquet(data []BrewRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the BrewRecord struct tags
	writer := parquet.NewGenericWriter[BrewRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ReadBrewRecordsParquet reads BrewRecord structs back from a Parquet file.
func ReadBrewRecordsParquet(inputPath string) ([]BrewRecord, error) {
	records, err := parquet.ReadFile[BrewRecord](inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return records, nil
}
