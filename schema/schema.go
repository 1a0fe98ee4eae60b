// Package schema has the data model, result types and global constants
// for all parts of brewmetrics.
package schema

import "time"

// BrewSample represents one normalized brewing outcome. The three measured
// fields (extraction, TDS, ratio) are always present; everything else is
// optional context. Optional numeric fields use pointers so that "not
// recorded" is distinct from zero - sentinel values are never used.
type BrewSample struct {
	BrewID    string    // Stable identifier for the brew, empty if unassigned
	BeanID    string    // Bean the brew was made with, empty if unknown
	Timestamp time.Time // When the brew happened; zero value means unknown

	ExtractionPct float64 // Mass fraction of dry coffee dissolved, percent
	TDSPct        float64 // Dissolved solids concentration in the cup, percent
	BrewRatio     float64 // Coffee dose per liter of brew water (g/L)

	Rating *float64 // Taster rating in [0,5], nil when untasted

	// Recorded brewing parameters, nil when not logged.
	GrindSize     *float64
	WaterTempC    *float64
	BloomTimeSec  *float64
	TotalTimeSec  *float64
	BloomWaterML  *float64
	DoseGrams     *float64
	WaterVolumeML *float64

	// Score is the unified quality score attached at ingest time.
	// Nil when the sample has not been scored yet.
	Score *float64

	// Zone is the brewing control chart zone label, e.g. "Ideal-Ideal".
	// Empty when unclassified.
	Zone string
}

// MetricValue returns the value of the named metric for this sample.
// The second return is false when the metric is absent for this sample;
// callers exclude such samples pairwise rather than dropping the row.
func (s *BrewSample) MetricValue(m Metric) (float64, bool) {
	switch m {
	case MetricExtraction:
		return s.ExtractionPct, true
	case MetricTDS:
		return s.TDSPct, true
	case MetricBrewRatio:
		return s.BrewRatio, true
	case MetricRating:
		return deref(s.Rating)
	case MetricScore:
		return deref(s.Score)
	case MetricGrindSize:
		return deref(s.GrindSize)
	case MetricWaterTemp:
		return deref(s.WaterTempC)
	case MetricBloomTime:
		return deref(s.BloomTimeSec)
	case MetricTotalTime:
		return deref(s.TotalTimeSec)
	default:
		return 0, false
	}
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// OptimalPoint is the optimal (extraction, TDS) outcome for one brew ratio.
// It always lies on the ratio's constraint line tds = (ratio/1000) * extraction.
type OptimalPoint struct {
	Extraction float64 `json:"extraction"`
	TDS        float64 `json:"tds"`
}

// ScoreResult is the outcome of scoring a single brew.
type ScoreResult struct {
	Score    float64      `json:"score"`           // 0-100, 100 exactly at the optimal point
	Distance float64      `json:"distance"`        // Normalized distance from the optimal point
	GradE    float64      `json:"grad_extraction"` // d(score)/d(extraction)
	GradT    float64      `json:"grad_tds"`        // d(score)/d(tds)
	Optimal  OptimalPoint `json:"optimal"`

	// Clamped reports that extraction or TDS fell outside the physically
	// plausible range and was clamped before scoring. Diagnostic, not fatal.
	Clamped bool `json:"clamped"`
}
