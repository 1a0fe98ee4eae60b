package brewcsv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewkit/brewmetrics/internal/contract"
)

const logHeader = "brew_id,bean_name,brew_date,coffee_dose_grams,water_volume_ml,final_tds_percent,final_brew_mass_grams,score_overall_rating,grind_size,water_temperature_c"

func TestParseDerivedFields(t *testing.T) {
	input := logHeader + "\n" +
		"b1,ethiopia-natural,2026-03-01,18.0,300,1.35,280,4.5,18,93\n"

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Samples, 1)
	assert.Empty(t, result.Problems)

	s := result.Samples[0]
	assert.Equal(t, "b1", s.BrewID)
	assert.Equal(t, "ethiopia-natural", s.BeanID)
	assert.Equal(t, 2026, s.Timestamp.Year())

	// ratio = 18 g / 0.3 L, extraction = 280 * 1.35 / 18
	assert.InDelta(t, 60.0, s.BrewRatio, 1e-9)
	assert.InDelta(t, 21.0, s.ExtractionPct, 1e-9)
	assert.InDelta(t, 1.35, s.TDSPct, 1e-9)

	require.NotNil(t, s.Rating)
	assert.InDelta(t, 4.5, *s.Rating, 1e-9)
	require.NotNil(t, s.GrindSize)
	assert.InDelta(t, 18.0, *s.GrindSize, 1e-9)
	require.NotNil(t, s.WaterTempC)
	assert.InDelta(t, 93.0, *s.WaterTempC, 1e-9)
	assert.Nil(t, s.BloomTimeSec) // column absent from this log
}

func TestParseSkipsBadRows(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{
			name:   "missing brew id",
			row:    ",beans,2026-03-01,18,300,1.35,280,,,",
			reason: "missing brew_id",
		},
		{
			name:   "bad date",
			row:    "b1,beans,03/01/2026,18,300,1.35,280,,,",
			reason: "bad brew_date",
		},
		{
			name:   "dose out of range",
			row:    "b1,beans,2026-03-01,75,300,1.35,280,,,",
			reason: "coffee_dose_grams",
		},
		{
			name:   "unparseable tds",
			row:    "b1,beans,2026-03-01,18,300,strong,280,,,",
			reason: "bad final_tds_percent",
		},
		{
			name:   "rating out of range",
			row:    "b1,beans,2026-03-01,18,300,1.35,280,7,,",
			reason: "rating 7 out of range [0,5]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := logHeader + "\n" + tc.row + "\n"
			result, err := Parse(strings.NewReader(input))
			require.NoError(t, err)
			assert.Empty(t, result.Samples)
			require.Len(t, result.Problems, 1)
			assert.Contains(t, result.Problems[0].Reason, tc.reason)
			assert.Equal(t, 2, result.Problems[0].Line)
		})
	}
}

// TestParseRatingScale pins the five-point taster scale: 5 is the top of
// the range, anything above it is rejected.
func TestParseRatingScale(t *testing.T) {
	input := logHeader + "\n" +
		"b1,beans,2026-03-01,18,300,1.35,280,5.0,,\n" +
		"b2,beans,2026-03-02,18,300,1.35,280,0,,\n" +
		"b3,beans,2026-03-03,18,300,1.35,280,5.1,,\n"

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Samples, 2)
	assert.InDelta(t, 5.0, *result.Samples[0].Rating, 1e-9)
	assert.InDelta(t, 0.0, *result.Samples[1].Rating, 1e-9)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, "b3", result.Problems[0].BrewID)
	assert.Contains(t, result.Problems[0].Reason, "out of range [0,5]")
}

func TestParseBadRowDoesNotStopGoodRows(t *testing.T) {
	input := logHeader + "\n" +
		"b1,beans,2026-03-01,18,300,1.35,280,,,\n" +
		"b2,beans,2026-03-02,18,300,not-a-number,280,,,\n" +
		"b3,beans,2026-03-03,18,300,1.40,285,,,\n"

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Samples, 2)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, "b2", result.Problems[0].BrewID)
}

func TestParseMissingRequiredColumns(t *testing.T) {
	input := "brew_id,bean_name\nb1,beans\n"
	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrInvalidParameter))
	assert.Contains(t, err.Error(), "coffee_dose_grams")
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	input := "Brew_ID,Bean_Name,Brew_Date,Coffee_Dose_Grams,Water_Volume_ML,Final_TDS_Percent,Final_Brew_Mass_Grams\n" +
		"b1,beans,2026-03-01,18,300,1.35,280\n"
	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Samples, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open brew log")
}
