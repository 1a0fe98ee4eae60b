package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredFixture() []schema.ScoredSample {
	rating := 4.5
	return []schema.ScoredSample{
		{
			Sample: schema.BrewSample{
				BrewID:        "brew-001",
				BeanID:        "ethiopia-yirgacheffe",
				Timestamp:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
				ExtractionPct: 19.5,
				TDSPct:        1.25,
				BrewRatio:     64.1,
				Rating:        &rating,
				Zone:          "Ideal-Ideal",
			},
			Result: schema.ScoreResult{
				Score:    96.2,
				Distance: 0.08,
				Optimal:  schema.OptimalPoint{Extraction: 19.4, TDS: 1.24},
			},
		},
		{
			Sample: schema.BrewSample{
				BrewID:        "brew-002",
				Timestamp:     time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
				ExtractionPct: 16.0,
				TDSPct:        1.05,
				BrewRatio:     58.0,
				Zone:          "Under-Weak",
			},
			Result: schema.ScoreResult{
				Score:    42.7,
				Distance: 1.7,
				Clamped:  true,
			},
		},
	}
}

func TestWriteJSONResultsForScores(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForScores(&buf, scoredFixture())
	require.NoError(t, err)

	var result []map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "Excellent", result[0]["label"])
	assert.Equal(t, float64(2), result[1]["rank"])
	assert.Equal(t, "Poor", result[1]["label"])
}

func TestWriteCSVResultsForScores(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForScores(w, scoredFixture(), fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // no header here, 2 rows

	assert.Contains(t, lines[0], "brew-001")
	assert.Contains(t, lines[0], "ethiopia-yirgacheffe")
	assert.Contains(t, lines[0], "96.20")
	assert.Contains(t, lines[0], "Excellent")
	assert.Contains(t, lines[1], "true") // clamped flag
}

func TestWriteScoreTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120, CacheBackend: schema.NoneBackend}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeScoreTable(scoredFixture(), cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "brew-001")
	assert.Contains(t, out, "Ideal-Ideal")
	assert.Contains(t, out, "Showing 2 brews (1 clamped before scoring)")
}

func TestWriteTrendTable(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Width: 100, CacheBackend: schema.NoneBackend}
	fmtFloat, _ := createFormatters(cfg.Precision)
	result := &schema.TrendResult{
		Metric:     schema.MetricExtraction,
		WindowDays: 30,
		Points: []schema.TrendPoint{
			{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Value: 18.5, RollingAvg: 18.5},
			{Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Value: 19.0, RollingAvg: 18.75},
			{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Value: 19.6, RollingAvg: 19.03},
		},
		Direction:     schema.TrendImproving,
		PercentChange: 5.9,
		Slope:         0.55,
		SampleSize:    3,
	}

	var buf bytes.Buffer
	err := writeTrendTable(result, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "improving")
	assert.Contains(t, out, "+5.9%")
}

func TestWriteTrendTableLowConfidence(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Width: 100}
	fmtFloat, _ := createFormatters(cfg.Precision)
	result := &schema.TrendResult{
		Metric:        schema.MetricRating,
		WindowDays:    7,
		Points:        []schema.TrendPoint{{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Value: 7, RollingAvg: 7}},
		Direction:     schema.TrendStable,
		SampleSize:    1,
		LowConfidence: true,
	}

	var buf bytes.Buffer
	err := writeTrendTable(result, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "low confidence")
}

func TestWriteComparisonTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120}
	_, fmtOptFloat := createFormatters(cfg.Precision)
	mean := 19.2
	result := &schema.ComparisonResult{
		Metric: schema.MetricExtraction,
		Beans: []schema.BeanStats{
			{BeanID: "kenya-aa", SampleCount: 12, Mean: &mean, StdDev: &mean, Best: &mean, Worst: &mean, Confidence: schema.ConfidenceHigh},
			{BeanID: "never-brewed", SampleCount: 0, Confidence: schema.ConfidenceLow},
		},
		MinSampleSize: 0,
		Confidence:    schema.ConfidenceLow,
	}

	var buf bytes.Buffer
	err := writeComparisonTable(result, cfg, fmtOptFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "kenya-aa")
	assert.Contains(t, out, "never-brewed")
	assert.Contains(t, out, "n/a") // zero-sample bean renders nil stats
	assert.Contains(t, out, "Compared 2 beans on extraction_pct")
}

func TestWriteCorrelationTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120}
	r := 0.82
	result := &schema.CorrelationResult{
		Cells: []schema.CorrelationCell{
			{Parameter: schema.MetricGrindSize, Outcome: schema.MetricExtraction, R: &r, SampleSize: 14},
			{Parameter: schema.MetricWaterTemp, Outcome: schema.MetricRating, R: nil, SampleSize: 2},
		},
		Notable: []schema.NotablePair{
			{Parameter: schema.MetricGrindSize, Outcome: schema.MetricExtraction, R: 0.82, Strength: schema.StrengthStrong},
		},
	}

	var buf bytes.Buffer
	err := writeCorrelationTable(result, cfg, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "0.820")
	assert.Contains(t, out, "n/a") // undefined pair
	assert.Contains(t, out, "grind_size vs extraction_pct: r=0.820 (strong)")
}

func TestWriteCorrelationTableNoNotable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120}
	result := &schema.CorrelationResult{
		Cells: []schema.CorrelationCell{
			{Parameter: schema.MetricGrindSize, Outcome: schema.MetricExtraction, R: nil, SampleSize: 1},
		},
	}

	var buf bytes.Buffer
	err := writeCorrelationTable(result, cfg, time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No notable correlations")
}

func TestWriteOptimalText(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 100}
	fmtFloat, fmtOptFloat := createFormatters(cfg.Precision)
	grind := 22.0
	sample := scoredFixture()[0].Sample
	sample.GrindSize = &grind
	result := &schema.OptimalParams{
		BeanID:     "ethiopia-yirgacheffe",
		Found:      true,
		Sample:     &sample,
		Score:      96.2,
		SampleSize: 9,
		Confidence: schema.ConfidenceMedium,
	}

	var buf bytes.Buffer
	err := writeOptimalText(result, cfg, fmtFloat, fmtOptFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Best recorded brew for ethiopia-yirgacheffe")
	assert.Contains(t, out, "brew-001")
	assert.Contains(t, out, "22.0")
	assert.Contains(t, out, "Bloom time:  n/a")
	assert.Contains(t, out, "Considered 9 brews (confidence: medium)")
}

func TestWriteOptimalTextNotFound(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	fmtFloat, fmtOptFloat := createFormatters(cfg.Precision)
	result := &schema.OptimalParams{Found: false}

	var buf bytes.Buffer
	err := writeOptimalText(result, cfg, fmtFloat, fmtOptFloat, time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No brews recorded for all beans")
}

func TestWriteConsistencyTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 100}
	fmtFloat, _ := createFormatters(cfg.Precision)
	sd, cv := 0.4, 0.021
	result := &schema.ConsistencyResult{
		BeanID: "kenya-aa",
		Metrics: []schema.MetricConsistency{
			{Metric: schema.MetricExtraction, StdDev: &sd, CV: &cv},
			{Metric: schema.MetricRating},
		},
		Score:      91.3,
		Band:       schema.BandExcellent,
		SampleSize: 15,
	}

	var buf bytes.Buffer
	err := writeConsistencyTable(result, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "0.0210")
	assert.Contains(t, out, "n/a") // rating CV undefined
	assert.Contains(t, out, "Consistency for kenya-aa: 91.3")
	assert.Contains(t, out, "across 15 brews")
}

func TestWriteSummaryText(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 100}
	_, fmtOptFloat := createFormatters(cfg.Precision)
	ext, rating := 19.1, 3.9
	result := &schema.SummaryResult{
		TotalBrews:     42,
		UniqueBeans:    5,
		DateRangeDays:  60,
		AvgExtraction:  &ext,
		AvgRating:      &rating,
		BestBean:       "kenya-aa",
		MostBrewedBean: "house-blend",
		RatingTrend:    schema.TrendImproving,
	}

	var buf bytes.Buffer
	err := writeSummaryText(result, cfg, fmtOptFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Total brews:")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "19.1%")
	assert.Contains(t, out, "n/a") // Avg TDS was never recorded
	assert.Contains(t, out, "kenya-aa")
	assert.Contains(t, out, "improving")
}

func TestGetMaxTableBeanWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow override", 40, 12},
		{"default terminal", 80, 30},
		{"wide terminal", 200, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, GetMaxTableBeanWidth(cfg))
		})
	}
}

func TestTruncateBean(t *testing.T) {
	assert.Equal(t, "short", truncateBean("short", 12))
	assert.Equal(t, "a-very-lo...", truncateBean("a-very-long-roaster-name", 12))
	assert.Equal(t, "ab", truncateBean("abcd", 2))
}

func TestDisplayBean(t *testing.T) {
	assert.Equal(t, "-", displayBean(""))
	assert.Equal(t, "kenya-aa", displayBean("kenya-aa"))
}
