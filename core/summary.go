package core

import (
	"time"

	"github.com/brewkit/brewmetrics/core/stats"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
)

// Summary condenses the full log into a single overview: volume, variety,
// averages, standout beans, overall consistency, and the recent rating
// trend. Averages over metrics nobody recorded stay nil.
func (a *AnalyticsService) Summary(samples []schema.BrewSample, now time.Time) schema.SummaryResult {
	result := schema.SummaryResult{TotalBrews: len(samples)}
	if len(samples) == 0 {
		return result
	}

	beanCounts := make(map[string]int)
	beanRatings := make(map[string][]float64)
	var extractions, tdsValues, ratings []float64
	var earliest, latest time.Time

	for i := range samples {
		s := &samples[i]
		if s.BeanID != "" {
			beanCounts[s.BeanID]++
		}
		if v, ok := a.metricValue(s, schema.MetricExtraction); ok {
			extractions = append(extractions, v)
		}
		if v, ok := a.metricValue(s, schema.MetricTDS); ok {
			tdsValues = append(tdsValues, v)
		}
		if v, ok := a.metricValue(s, schema.MetricRating); ok {
			ratings = append(ratings, v)
			if s.BeanID != "" {
				beanRatings[s.BeanID] = append(beanRatings[s.BeanID], v)
			}
		}
		if !s.Timestamp.IsZero() {
			if earliest.IsZero() || s.Timestamp.Before(earliest) {
				earliest = s.Timestamp
			}
			if s.Timestamp.After(latest) {
				latest = s.Timestamp
			}
		}
	}

	result.UniqueBeans = len(beanCounts)
	if !earliest.IsZero() {
		result.DateRangeDays = int(latest.Sub(earliest).Hours()/24) + 1
	}
	if mean, ok := stats.Mean(extractions); ok {
		result.AvgExtraction = schema.Float(mean)
	}
	if mean, ok := stats.Mean(tdsValues); ok {
		result.AvgTDS = schema.Float(mean)
	}
	if mean, ok := stats.Mean(ratings); ok {
		result.AvgRating = schema.Float(mean)
	}

	result.BestBean = topBean(beanRatings, beanCounts)
	result.MostBrewedBean = mostBrewed(beanCounts)

	consistency := a.ConsistencyMetrics(samples, "")
	if consistency.SampleSize > 1 {
		result.ConsistencyScore = schema.Float(consistency.Score)
	}

	trend := a.ImprovementTrend(samples, schema.MetricRating, contract.DefaultWindowDays, now)
	if !trend.LowConfidence {
		result.RatingTrend = trend.Direction
	}
	return result
}

// topBean returns the bean with the highest mean rating, requiring at
// least one rated brew. Ties fall to the higher brew count, then to the
// lexicographically smaller id so the answer is deterministic.
func topBean(ratings map[string][]float64, counts map[string]int) string {
	var best string
	var bestMean float64
	for id, values := range ratings {
		mean, ok := stats.Mean(values)
		if !ok {
			continue
		}
		switch {
		case best == "", mean > bestMean:
			best, bestMean = id, mean
		case mean == bestMean:
			if counts[id] > counts[best] || (counts[id] == counts[best] && id < best) {
				best, bestMean = id, mean
			}
		}
	}
	return best
}

// mostBrewed returns the bean with the most brews, smaller id on ties.
func mostBrewed(counts map[string]int) string {
	var best string
	for id, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && id < best) {
			best = id
		}
	}
	return best
}
