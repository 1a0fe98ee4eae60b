package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCategorizeStrength checks the TDS strength boundaries.
func TestCategorizeStrength(t *testing.T) {
	tests := []struct {
		name     string
		tds      float64
		expected string
	}{
		{"well under weak max", 0.9, "Weak"},
		{"just under weak max", 1.149, "Weak"},
		{"weak max is ideal", 1.15, "Ideal"},
		{"ideal max inclusive", 1.35, "Ideal"},
		{"above ideal max", 1.36, "Strong"},
		{"very strong", 2.0, "Strong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeStrength(tt.tds))
		})
	}
}

// TestCategorizeExtraction checks the extraction yield boundaries.
func TestCategorizeExtraction(t *testing.T) {
	tests := []struct {
		name       string
		extraction float64
		expected   string
	}{
		{"under extracted", 16.0, "Under"},
		{"lower bound of ideal", 18.0, "Ideal"},
		{"upper bound of ideal", 22.0, "Ideal"},
		{"over extracted", 22.5, "Over"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeExtraction(tt.extraction))
		})
	}
}

// TestClassifyZone checks the combined zone label.
func TestClassifyZone(t *testing.T) {
	assert.Equal(t, "Ideal-Ideal", ClassifyZone(20.0, 1.3))
	assert.Equal(t, "Under-Weak", ClassifyZone(15.0, 1.0))
	assert.Equal(t, "Over-Strong", ClassifyZone(24.0, 1.6))
}

// TestConfidenceForSamples checks the fixed confidence thresholds.
func TestConfidenceForSamples(t *testing.T) {
	assert.Equal(t, ConfidenceLow, ConfidenceForSamples(0))
	assert.Equal(t, ConfidenceLow, ConfidenceForSamples(2))
	assert.Equal(t, ConfidenceMedium, ConfidenceForSamples(3))
	assert.Equal(t, ConfidenceMedium, ConfidenceForSamples(9))
	assert.Equal(t, ConfidenceHigh, ConfidenceForSamples(10))
}

// TestBandForConsistencyScore checks the fixed band thresholds.
func TestBandForConsistencyScore(t *testing.T) {
	assert.Equal(t, BandExcellent, BandForConsistencyScore(100))
	assert.Equal(t, BandExcellent, BandForConsistencyScore(85))
	assert.Equal(t, BandGood, BandForConsistencyScore(70))
	assert.Equal(t, BandFair, BandForConsistencyScore(50))
	assert.Equal(t, BandNeedsImprovement, BandForConsistencyScore(49.9))
}

// TestStrengthForCorrelation checks the notable pair thresholds.
func TestStrengthForCorrelation(t *testing.T) {
	s, notable := StrengthForCorrelation(0.85)
	assert.True(t, notable)
	assert.Equal(t, StrengthStrong, s)

	s, notable = StrengthForCorrelation(-0.55)
	assert.True(t, notable)
	assert.Equal(t, StrengthModerate, s)

	_, notable = StrengthForCorrelation(0.49)
	assert.False(t, notable)
}

// TestMetricValue exercises presence semantics for optional fields.
func TestMetricValue(t *testing.T) {
	s := BrewSample{
		ExtractionPct: 20.0,
		TDSPct:        1.3,
		BrewRatio:     65,
		Rating:        Float(4.5),
	}

	v, ok := s.MetricValue(MetricExtraction)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, v, 1e-12)

	v, ok = s.MetricValue(MetricRating)
	assert.True(t, ok)
	assert.InDelta(t, 4.5, v, 1e-12)

	_, ok = s.MetricValue(MetricGrindSize)
	assert.False(t, ok, "unlogged parameter must read as absent, not zero")

	_, ok = s.MetricValue(Metric("bogus"))
	assert.False(t, ok)
}
