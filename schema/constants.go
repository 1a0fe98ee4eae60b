package schema

// Custom string types for type safety.
type (
	// Metric identifies a tracked brewing parameter or outcome column.
	Metric string

	// TrendDirection represents the direction of a metric trend.
	TrendDirection string

	// Confidence represents how much data backs an analytics result.
	Confidence string

	// ConsistencyBand is the interpretive band for a consistency score.
	ConsistencyBand string

	// CorrelationStrength classifies a notable correlation pair.
	CorrelationStrength string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// Outcome metrics derived or measured per brew.
const (
	MetricExtraction Metric = "extraction_pct"
	MetricTDS        Metric = "tds_pct"
	MetricRating     Metric = "rating"
	MetricScore      Metric = "score"
)

// Brewing parameters recorded per brew.
const (
	MetricGrindSize Metric = "grind_size"
	MetricWaterTemp Metric = "water_temp_c"
	MetricBrewRatio Metric = "brew_ratio"
	MetricBloomTime Metric = "bloom_time_s"
	MetricTotalTime Metric = "total_time_s"
)

// All trend directions supported.
const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// Confidence bands keyed by sample count: low <3, medium 3-9, high >=10.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Consistency bands keyed by consistency score: >=85, >=70, >=50, else.
const (
	BandExcellent        ConsistencyBand = "excellent"
	BandGood             ConsistencyBand = "good"
	BandFair             ConsistencyBand = "fair"
	BandNeedsImprovement ConsistencyBand = "needs_improvement"
)

// Correlation strength thresholds on |r|.
const (
	StrengthStrong   CorrelationStrength = "strong"   // |r| >= 0.7
	StrengthModerate CorrelationStrength = "moderate" // |r| >= 0.5
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Polarity says whether higher values of a metric are better.
// It decides the sign convention when classifying trend direction.
type Polarity int

// Polarity values.
const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
	NoPolarity // parameters with no intrinsic quality direction
)

// TrendableMetrics lists metrics that can be trended over time.
var TrendableMetrics = []Metric{
	MetricExtraction, MetricTDS, MetricRating, MetricScore,
	MetricGrindSize, MetricWaterTemp, MetricBrewRatio,
	MetricBloomTime, MetricTotalTime,
}

// CorrelationParameters lists the brewing parameters entering the
// pairwise correlation matrix.
var CorrelationParameters = []Metric{
	MetricGrindSize, MetricWaterTemp, MetricBrewRatio,
	MetricBloomTime, MetricTotalTime,
}

// CorrelationOutcomes lists the outcome columns entering the
// pairwise correlation matrix.
var CorrelationOutcomes = []Metric{
	MetricExtraction, MetricTDS, MetricRating,
}

// ConsistencyMetrics lists the metrics whose dispersion feeds the
// consistency score.
var ConsistencyMetrics = []Metric{
	MetricExtraction, MetricTDS, MetricRating,
}

// DefaultPolarity holds the per-metric polarity used for trend direction.
// Ratings and scores improve upward; raw parameters carry no direction.
var DefaultPolarity = map[Metric]Polarity{
	MetricExtraction: HigherIsBetter,
	MetricTDS:        HigherIsBetter,
	MetricRating:     HigherIsBetter,
	MetricScore:      HigherIsBetter,
	MetricGrindSize:  NoPolarity,
	MetricWaterTemp:  NoPolarity,
	MetricBrewRatio:  NoPolarity,
	MetricBloomTime:  NoPolarity,
	MetricTotalTime:  NoPolarity,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache/history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTrendMetrics lists metrics accepted by the trend analysis.
var ValidTrendMetrics = func() map[Metric]struct{} {
	m := make(map[Metric]struct{}, len(TrendableMetrics))
	for _, metric := range TrendableMetrics {
		m[metric] = struct{}{}
	}
	return m
}()

// ConfidenceForSamples buckets a sample count into a confidence band.
// Thresholds are fixed: low for <3 samples, medium for 3-9, high for >=10.
func ConfidenceForSamples(n int) Confidence {
	switch {
	case n >= 10:
		return ConfidenceHigh
	case n >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// BandForConsistencyScore buckets a 0-100 consistency score into its
// interpretive band. Thresholds are fixed: 85, 70, 50.
func BandForConsistencyScore(score float64) ConsistencyBand {
	switch {
	case score >= 85:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandNeedsImprovement
	}
}

// StrengthForCorrelation classifies |r| into a notable strength band.
// Pairs below the moderate threshold are not notable at all.
func StrengthForCorrelation(r float64) (CorrelationStrength, bool) {
	abs := r
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 0.7:
		return StrengthStrong, true
	case abs >= 0.5:
		return StrengthModerate, true
	default:
		return "", false
	}
}
