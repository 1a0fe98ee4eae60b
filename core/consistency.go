package core

import (
	"github.com/brewkit/brewmetrics/core/stats"
	"github.com/brewkit/brewmetrics/schema"
)

// cvCeilings map each tracked metric to the coefficient of variation at
// which its per-metric consistency score reaches zero. Extraction and TDS
// are tightly controllable; ratings are subjective and get a wider band.
var cvCeilings = map[schema.Metric]float64{
	schema.MetricExtraction: 0.10,
	schema.MetricTDS:        0.10,
	schema.MetricRating:     0.25,
}

// ConsistencyMetrics measures brewing repeatability across a sample set,
// optionally restricted to one bean. Each tracked metric maps its CV onto
// a 0-100 score against that metric's ceiling; the aggregate is the mean
// of the defined per-metric scores. When no metric has a defined CV the
// aggregate is 0 with SampleSize telling the caller why.
func (a *AnalyticsService) ConsistencyMetrics(samples []schema.BrewSample, beanID string) schema.ConsistencyResult {
	result := schema.ConsistencyResult{BeanID: beanID}

	var pool []schema.BrewSample
	if beanID == "" {
		pool = samples
	} else {
		for i := range samples {
			if samples[i].BeanID == beanID {
				pool = append(pool, samples[i])
			}
		}
	}
	result.SampleSize = len(pool)

	var total float64
	var defined int
	for _, metric := range schema.ConsistencyMetrics {
		var values []float64
		for i := range pool {
			if v, ok := a.metricValue(&pool[i], metric); ok {
				values = append(values, v)
			}
		}

		entry := schema.MetricConsistency{Metric: metric}
		if sd, ok := stats.StdDev(values); ok {
			entry.StdDev = schema.Float(sd)
		}
		if cv, ok := stats.CV(values); ok {
			entry.CV = schema.Float(cv)
			total += consistencyScore(cv, cvCeilings[metric])
			defined++
		}
		result.Metrics = append(result.Metrics, entry)
	}

	if defined > 0 {
		result.Score = total / float64(defined)
	}
	result.Band = schema.BandForConsistencyScore(result.Score)
	return result
}

// consistencyScore maps a CV linearly onto 0-100: zero dispersion scores
// 100, the ceiling and beyond score 0.
func consistencyScore(cv, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	score := 100 * (1 - cv/ceiling)
	if score < 0 {
		return 0
	}
	return score
}
