package core

import (
	"github.com/brewkit/brewmetrics/schema"
)

// OptimalParameters finds the best recorded brew, optionally restricted to
// one bean. "Best" means highest unified score, with rating and then
// recency breaking ties. An empty candidate pool returns Found=false -
// never an error, since "no data yet" is a normal state for a new log.
func (a *AnalyticsService) OptimalParameters(samples []schema.BrewSample, beanID string) schema.OptimalParams {
	result := schema.OptimalParams{BeanID: beanID}

	var best *schema.BrewSample
	var bestScore float64
	for i := range samples {
		s := &samples[i]
		if beanID != "" && s.BeanID != beanID {
			continue
		}
		score, ok := a.metricValue(s, schema.MetricScore)
		if !ok {
			continue
		}
		result.SampleSize++
		if best == nil || betterBrew(score, s, bestScore, best) {
			best = s
			bestScore = score
		}
	}

	result.Confidence = schema.ConfidenceForSamples(result.SampleSize)
	if best == nil {
		return result
	}

	winner := *best
	result.Found = true
	result.Sample = &winner
	result.Score = bestScore
	return result
}

// betterBrew reports whether candidate beats the incumbent best brew.
// Ties on score fall to rating (present beats absent, higher beats lower),
// then to the more recent timestamp.
func betterBrew(score float64, s *schema.BrewSample, bestScore float64, best *schema.BrewSample) bool {
	if score != bestScore {
		return score > bestScore
	}
	switch {
	case s.Rating != nil && best.Rating == nil:
		return true
	case s.Rating == nil && best.Rating != nil:
		return false
	case s.Rating != nil && *s.Rating != *best.Rating:
		return *s.Rating > *best.Rating
	}
	return s.Timestamp.After(best.Timestamp)
}
