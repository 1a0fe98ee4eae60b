package core

import (
	"sort"
	"time"

	"github.com/brewkit/brewmetrics/core/stats"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
)

// Trend analysis constraints.
const (
	// minTrendPoints is the sample count below which a trend is reported
	// as stable with low confidence instead of failing.
	minTrendPoints = 3

	// stableThresholdPct is the |percent change| below which a trend
	// counts as stable regardless of polarity.
	stableThresholdPct = 5.0
)

// AnalyticsService computes batch analytics over a caller-supplied sample
// collection. Every method is a pure function of its inputs: no hidden
// state, so repeated calls with identical inputs return identical results
// and concurrent calls need no locking.
type AnalyticsService struct {
	engine   *ScoreEngine
	polarity map[schema.Metric]schema.Polarity
	mgr      contract.CacheManager // optional, for the correlation cache
}

// NewAnalyticsService builds a service around a score engine. A nil
// polarity map falls back to the package defaults; a nil manager disables
// result caching (correctness never depends on the cache).
func NewAnalyticsService(engine *ScoreEngine, polarity map[schema.Metric]schema.Polarity, mgr contract.CacheManager) *AnalyticsService {
	if polarity == nil {
		polarity = schema.DefaultPolarity
	}
	return &AnalyticsService{engine: engine, polarity: polarity, mgr: mgr}
}

// ImprovementTrend computes the trend of one metric over the trailing
// window. Samples without a timestamp or without the metric are excluded
// pairwise. Fewer than 3 usable points yields a stable, low-confidence
// trend rather than an error.
func (a *AnalyticsService) ImprovementTrend(samples []schema.BrewSample, metric schema.Metric, windowDays int, now time.Time) schema.TrendResult {
	if windowDays < 1 {
		windowDays = 1
	}
	result := schema.TrendResult{
		Metric:     metric,
		WindowDays: windowDays,
		Direction:  schema.TrendStable,
	}

	cutoff := now.AddDate(0, 0, -windowDays)

	type obs struct {
		date  time.Time
		value float64
	}
	var observations []obs
	for i := range samples {
		s := &samples[i]
		if s.Timestamp.IsZero() || s.Timestamp.Before(cutoff) || s.Timestamp.After(now) {
			continue
		}
		v, ok := a.metricValue(s, metric)
		if !ok {
			continue
		}
		observations = append(observations, obs{date: s.Timestamp, value: v})
	}

	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].date.Before(observations[j].date)
	})

	values := make([]float64, len(observations))
	for i, o := range observations {
		values[i] = o.value
	}

	result.SampleSize = len(values)
	rolling := stats.RollingMean(values, contract.DefaultRollingWindow)
	result.Points = make([]schema.TrendPoint, len(values))
	for i := range values {
		result.Points[i] = schema.TrendPoint{
			Date:       observations[i].date,
			Value:      values[i],
			RollingAvg: rolling[i],
		}
	}

	if len(values) < minTrendPoints {
		result.LowConfidence = true
		return result
	}

	result.PercentChange = stats.PercentChange(values)
	if slope, ok := stats.OLSSlope(values); ok {
		result.Slope = slope
	}
	result.Direction = a.direction(metric, result.PercentChange)
	return result
}

// direction classifies a percent change, honoring per-metric polarity.
// For metrics where lower is better, a falling value is an improvement.
func (a *AnalyticsService) direction(metric schema.Metric, percentChange float64) schema.TrendDirection {
	if percentChange < stableThresholdPct && percentChange > -stableThresholdPct {
		return schema.TrendStable
	}

	rising := percentChange > 0
	switch a.polarity[metric] {
	case schema.LowerIsBetter:
		rising = !rising
	case schema.NoPolarity:
		// Directionless metrics still report the raw movement so the
		// caller can render "rising/falling"; improving means rising here.
	}
	if rising {
		return schema.TrendImproving
	}
	return schema.TrendDeclining
}

// BeanComparison aggregates one metric per bean. Every requested bean
// appears in the result, in request order; beans with no samples carry
// all-nil stats so the caller sees "no data" explicitly.
func (a *AnalyticsService) BeanComparison(samples []schema.BrewSample, beanIDs []string, metric schema.Metric) schema.ComparisonResult {
	result := schema.ComparisonResult{
		Metric: metric,
		Beans:  make([]schema.BeanStats, 0, len(beanIDs)),
	}

	byBean := make(map[string][]float64, len(beanIDs))
	counts := make(map[string]int, len(beanIDs))
	requested := make(map[string]struct{}, len(beanIDs))
	for _, id := range beanIDs {
		requested[id] = struct{}{}
	}

	for i := range samples {
		s := &samples[i]
		if _, ok := requested[s.BeanID]; !ok {
			continue
		}
		counts[s.BeanID]++
		if v, ok := a.metricValue(s, metric); ok {
			byBean[s.BeanID] = append(byBean[s.BeanID], v)
		}
	}

	minSample := -1
	for _, id := range beanIDs {
		entry := schema.BeanStats{
			BeanID:      id,
			SampleCount: counts[id],
			Confidence:  schema.ConfidenceForSamples(counts[id]),
		}
		values := byBean[id]
		if mean, ok := stats.Mean(values); ok {
			entry.Mean = schema.Float(mean)
			lo, hi := values[0], values[0]
			for _, v := range values[1:] {
				lo = min(lo, v)
				hi = max(hi, v)
			}
			entry.Best = schema.Float(hi)
			entry.Worst = schema.Float(lo)
		}
		if sd, ok := stats.StdDev(values); ok {
			entry.StdDev = schema.Float(sd)
		}
		result.Beans = append(result.Beans, entry)

		if minSample < 0 || counts[id] < minSample {
			minSample = counts[id]
		}
	}

	if minSample < 0 {
		minSample = 0
	}
	result.MinSampleSize = minSample
	result.Confidence = schema.ConfidenceForSamples(minSample)
	return result
}

// ParameterCorrelations computes the pairwise Pearson matrix between every
// brewing parameter and outcome column. Undefined cells stay in the matrix
// with a nil r; defined pairs clearing |r| >= 0.5 also land in the notable
// list, sorted by |r| descending.
func (a *AnalyticsService) ParameterCorrelations(samples []schema.BrewSample) schema.CorrelationResult {
	var result schema.CorrelationResult

	for _, param := range schema.CorrelationParameters {
		for _, outcome := range schema.CorrelationOutcomes {
			xs, ys := a.pairedValues(samples, param, outcome)
			cell := schema.CorrelationCell{
				Parameter:  param,
				Outcome:    outcome,
				SampleSize: len(xs),
			}
			if r, ok := stats.Pearson(xs, ys); ok {
				cell.R = schema.Float(r)
				if strength, notable := schema.StrengthForCorrelation(r); notable {
					result.Notable = append(result.Notable, schema.NotablePair{
						Parameter: param,
						Outcome:   outcome,
						R:         r,
						Strength:  strength,
					})
				}
			}
			result.Cells = append(result.Cells, cell)
		}
	}

	sort.SliceStable(result.Notable, func(i, j int) bool {
		return absFloat(result.Notable[i].R) > absFloat(result.Notable[j].R)
	})
	return result
}

// pairedValues extracts paired observations for two metrics, excluding
// samples where either side is missing. Rows stay usable for other pairs.
func (a *AnalyticsService) pairedValues(samples []schema.BrewSample, x, y schema.Metric) ([]float64, []float64) {
	var xs, ys []float64
	for i := range samples {
		s := &samples[i]
		xv, okX := a.metricValue(s, x)
		yv, okY := a.metricValue(s, y)
		if okX && okY {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	return xs, ys
}

// metricValue resolves a metric for a sample, computing the unified score
// on demand when it was not attached at ingest time.
func (a *AnalyticsService) metricValue(s *schema.BrewSample, metric schema.Metric) (float64, bool) {
	if metric == schema.MetricScore && s.Score == nil && a.engine != nil {
		result, err := a.engine.Calculate(s.ExtractionPct, s.TDSPct, s.BrewRatio)
		if err != nil {
			return 0, false
		}
		return result.Score, true
	}
	return s.MetricValue(metric)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
