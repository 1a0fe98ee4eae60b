package schema

import "time"

// TrendPoint is one chronologically ordered observation in a trend.
type TrendPoint struct {
	Date       time.Time `json:"date"`
	Value      float64   `json:"value"`
	RollingAvg float64   `json:"rolling_avg"`
}

// TrendResult represents trend analysis for a metric over a time window.
type TrendResult struct {
	Metric        Metric         `json:"metric"`
	WindowDays    int            `json:"window_days"`
	Points        []TrendPoint   `json:"points"`
	Direction     TrendDirection `json:"direction"`
	PercentChange float64        `json:"percent_change"`
	Slope         float64        `json:"slope"` // OLS slope of value vs time index
	SampleSize    int            `json:"sample_size"`

	// LowConfidence flags trends computed from fewer than 3 points.
	// Such trends always report a stable direction.
	LowConfidence bool `json:"low_confidence"`
}

// BeanStats holds per-bean aggregate statistics for one metric.
// Nil fields mean the bean has no usable observations for that statistic;
// beans with zero samples still appear in a comparison with all-nil stats.
type BeanStats struct {
	BeanID      string     `json:"bean_id"`
	SampleCount int        `json:"sample_count"`
	Mean        *float64   `json:"mean"`
	StdDev      *float64   `json:"std_dev"`
	Best        *float64   `json:"best"`
	Worst       *float64   `json:"worst"`
	Confidence  Confidence `json:"confidence"`
}

// ComparisonResult represents a cross-bean comparison on one metric.
type ComparisonResult struct {
	Metric        Metric      `json:"metric"`
	Beans         []BeanStats `json:"beans"` // Same order as the requested bean ids
	MinSampleSize int         `json:"min_sample_size"`
	Confidence    Confidence  `json:"confidence"` // Banded from MinSampleSize
}

// CorrelationCell is one entry of the pairwise correlation matrix.
// R is nil when the correlation is undefined (fewer than 3 pairs, or a
// constant series) - undefined is evidence-free, not a zero correlation.
type CorrelationCell struct {
	Parameter  Metric   `json:"parameter"`
	Outcome    Metric   `json:"outcome"`
	R          *float64 `json:"r"`
	SampleSize int      `json:"sample_size"`
}

// NotablePair is a correlation pair whose |r| clears the moderate threshold.
type NotablePair struct {
	Parameter Metric              `json:"parameter"`
	Outcome   Metric              `json:"outcome"`
	R         float64             `json:"r"`
	Strength  CorrelationStrength `json:"strength"`
}

// CorrelationResult represents the full parameter/outcome correlation matrix
// plus the filtered list of notable pairs.
type CorrelationResult struct {
	Cells   []CorrelationCell `json:"cells"`
	Notable []NotablePair     `json:"notable"` // Sorted by |r| descending
}

// OptimalParams represents the best-scoring recorded brew, optionally
// restricted to one bean. Found is false when no sample qualified; that is
// a defined "no data" answer, not an error.
type OptimalParams struct {
	BeanID     string      `json:"bean_id,omitempty"`
	Found      bool        `json:"found"`
	Sample     *BrewSample `json:"sample,omitempty"`
	Score      float64     `json:"score"`
	SampleSize int         `json:"sample_size"` // Samples considered
	Confidence Confidence  `json:"confidence"`
}

// MetricConsistency holds the dispersion of one tracked metric.
type MetricConsistency struct {
	Metric Metric   `json:"metric"`
	StdDev *float64 `json:"std_dev"`
	CV     *float64 `json:"cv"` // Coefficient of variation, nil when undefined
}

// ConsistencyResult represents brewing repeatability across a sample set.
type ConsistencyResult struct {
	BeanID     string              `json:"bean_id,omitempty"`
	Metrics    []MetricConsistency `json:"metrics"`
	Score      float64             `json:"score"` // 0-100; lower CV means higher score
	Band       ConsistencyBand     `json:"band"`
	SampleSize int                 `json:"sample_size"`
}

// SummaryResult is the high-level overview combining several analyses.
type SummaryResult struct {
	TotalBrews       int            `json:"total_brews"`
	UniqueBeans      int            `json:"unique_beans"`
	DateRangeDays    int            `json:"date_range_days"`
	AvgExtraction    *float64       `json:"avg_extraction"`
	AvgTDS           *float64       `json:"avg_tds"`
	AvgRating        *float64       `json:"avg_rating"`
	BestBean         string         `json:"best_bean,omitempty"` // Highest mean rating
	MostBrewedBean   string         `json:"most_brewed_bean,omitempty"`
	ConsistencyScore *float64       `json:"consistency_score"`
	RatingTrend      TrendDirection `json:"rating_trend,omitempty"` // Last 30 days
}

// ScoredSample pairs a sample with its full score result, used by the
// history store and the parquet exporter.
type ScoredSample struct {
	Sample BrewSample  `json:"sample"`
	Result ScoreResult `json:"result"`
}

// CacheStatus reports the state of a cache store backend.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus reports the state of the brew history store.
type HistoryStatus struct {
	Backend      string    `json:"backend"`
	Connected    bool      `json:"connected"`
	TotalBrews   int       `json:"total_brews"`
	LastBrewTime time.Time `json:"last_brew_time"`
}
