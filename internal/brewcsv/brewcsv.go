// Package brewcsv loads brew logs from CSV files into the sample model.
// It derives the brew ratio and extraction yield from the raw measurements
// and skips rows that cannot produce a usable sample, collecting per-row
// problems instead of failing the whole load.
package brewcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
)

// Required log columns. Optional columns are resolved by name when present.
const (
	colBrewID   = "brew_id"
	colBeanName = "bean_name"
	colBrewDate = "brew_date"
	colDose     = "coffee_dose_grams"
	colWater    = "water_volume_ml"
	colTDS      = "final_tds_percent"
	colBrewMass = "final_brew_mass_grams"
)

// Optional log columns.
const (
	colRating    = "score_overall_rating"
	colGrindSize = "grind_size"
	colWaterTemp = "water_temperature_c"
	colBloomTime = "bloom_time_seconds"
	colTotalTime = "total_brew_time_seconds"
	colBloomML   = "bloom_water_ml"
)

var requiredColumns = []string{
	colBrewID, colBeanName, colBrewDate,
	colDose, colWater, colTDS, colBrewMass,
}

// Physical plausibility ranges for raw measurements. Rows outside these
// ranges are skipped with a problem entry rather than poisoning analytics.
var validationRanges = map[string][2]float64{
	colDose:     {0.1, 50.0},
	colWater:    {1, 1000},
	colTDS:      {0.1, 3.0},
	colBrewMass: {0.1, 1000.0},
}

const dateLayout = "2006-01-02"

// RowProblem describes why one CSV row was skipped.
type RowProblem struct {
	Line   int    // 1-based line number in the file
	BrewID string // Empty when the id column itself was unusable
	Reason string
}

// LoadResult holds the parsed samples plus per-row skip diagnostics.
type LoadResult struct {
	Samples  []schema.BrewSample
	Problems []RowProblem
}

// Load reads a brew log CSV from disk. A missing file or a header lacking
// required columns is an error; individual bad rows are not.
func Load(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open brew log: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a brew log CSV from a reader.
func Parse(r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{}
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Problems = append(result.Problems, RowProblem{
				Line:   line,
				Reason: fmt.Sprintf("malformed row: %v", err),
			})
			continue
		}

		sample, problem := parseRow(cols, record)
		if problem != "" {
			result.Problems = append(result.Problems, RowProblem{
				Line:   line,
				BrewID: cols.get(record, colBrewID),
				Reason: problem,
			})
			continue
		}
		result.Samples = append(result.Samples, sample)
	}
	return result, nil
}

// columnIndex maps lowercased column names to record positions.
type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, contract.InvalidParamf("brew log missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// get returns the trimmed cell for a column, empty when absent.
func (c columnIndex) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseRow converts one record into a sample. A non-empty problem string
// means the row is unusable.
func parseRow(cols columnIndex, record []string) (schema.BrewSample, string) {
	var sample schema.BrewSample

	sample.BrewID = cols.get(record, colBrewID)
	if sample.BrewID == "" {
		return sample, "missing brew_id"
	}
	sample.BeanID = cols.get(record, colBeanName)

	if raw := cols.get(record, colBrewDate); raw != "" {
		ts, err := time.Parse(dateLayout, raw)
		if err != nil {
			return sample, fmt.Sprintf("bad brew_date %q", raw)
		}
		sample.Timestamp = ts
	}

	dose, problem := requiredMeasurement(cols, record, colDose)
	if problem != "" {
		return sample, problem
	}
	water, problem := requiredMeasurement(cols, record, colWater)
	if problem != "" {
		return sample, problem
	}
	tds, problem := requiredMeasurement(cols, record, colTDS)
	if problem != "" {
		return sample, problem
	}
	mass, problem := requiredMeasurement(cols, record, colBrewMass)
	if problem != "" {
		return sample, problem
	}

	sample.TDSPct = tds
	sample.DoseGrams = schema.Float(dose)
	sample.WaterVolumeML = schema.Float(water)

	// Derived fields: dose per liter of brew water, and mass-based
	// extraction yield.
	sample.BrewRatio = dose / water * 1000
	sample.ExtractionPct = mass * tds / dose

	sample.Rating = optionalMeasurement(cols, record, colRating)
	sample.GrindSize = optionalMeasurement(cols, record, colGrindSize)
	sample.WaterTempC = optionalMeasurement(cols, record, colWaterTemp)
	sample.BloomTimeSec = optionalMeasurement(cols, record, colBloomTime)
	sample.TotalTimeSec = optionalMeasurement(cols, record, colTotalTime)
	sample.BloomWaterML = optionalMeasurement(cols, record, colBloomML)

	if sample.Rating != nil && (*sample.Rating < 0 || *sample.Rating > 5) {
		return sample, fmt.Sprintf("rating %g out of range [0,5]", *sample.Rating)
	}
	return sample, ""
}

// requiredMeasurement parses a required numeric cell and checks its
// plausibility range.
func requiredMeasurement(cols columnIndex, record []string, name string) (float64, string) {
	raw := cols.get(record, name)
	if raw == "" {
		return 0, "missing " + name
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("bad %s %q", name, raw)
	}
	if bounds, ok := validationRanges[name]; ok {
		if v < bounds[0] || v > bounds[1] {
			return 0, fmt.Sprintf("%s %g outside [%g,%g]", name, v, bounds[0], bounds[1])
		}
	}
	return v, ""
}

// optionalMeasurement parses an optional numeric cell. Absent, empty, or
// unparseable cells all come back nil.
func optionalMeasurement(cols columnIndex, record []string, name string) *float64 {
	raw := cols.get(record, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return schema.Float(v)
}
