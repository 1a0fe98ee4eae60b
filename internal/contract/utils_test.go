package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brewkit/brewmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: PoorValue,
		},
		{
			name:     "just before fair",
			input:    49.9,
			expected: PoorValue,
		},
		{
			name:     "exactly fair",
			input:    50.0,
			expected: FairValue,
		},
		{
			name:     "just before good",
			input:    69.9,
			expected: FairValue,
		},
		{
			name:     "exactly good",
			input:    70.0,
			expected: GoodValue,
		},
		{
			name:     "just before excellent",
			input:    89.9,
			expected: GoodValue,
		},
		{
			name:     "exactly excellent",
			input:    90.0,
			expected: ExcellentValue,
		},
		{
			name:     "perfect score",
			input:    100.0,
			expected: ExcellentValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabelContainsPlainText(t *testing.T) {
	for _, score := range []float64{10, 55, 75, 95} {
		assert.Contains(t, GetColorLabel(score), GetPlainLabel(score))
	}
}

func TestGetBandLabel(t *testing.T) {
	assert.Equal(t, string(schema.BandExcellent), GetBandLabel(schema.BandExcellent, false))
	assert.Contains(t, GetBandLabel(schema.BandFair, true), string(schema.BandFair))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.NotEqual(t, os.Stdout, f)

	_, err = f.WriteString("rank,brew_id\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "rank,"))
}

func TestFprintable(t *testing.T) {
	assert.Equal(t, "all beans", Fprintable(""))
	assert.Equal(t, "bean kenya-aa", Fprintable("kenya-aa"))
}

func TestDBFilePaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetCacheDBFilePath(), ".brewmetrics_cache.db"))
	assert.True(t, strings.HasSuffix(GetHistoryDBFilePath(), ".brewmetrics_history.db"))
	assert.NotEqual(t, GetCacheDBFilePath(), GetHistoryDBFilePath())
}
