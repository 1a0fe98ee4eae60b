package contract

import (
	"testing"

	"github.com/brewkit/brewmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, to be tweaked per case.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		CSVPathStr: "brews.csv",
		Metric:     string(schema.MetricScore),
		Window:     30,
		Limit:      25,
		Precision:  1,
		Output:     "text",
		Emoji:      "yes",
		Color:      "yes",

		CacheBackend: string(schema.SQLiteBackend),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(_ *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "unknown metric",
			mutate:      func(in *ConfigRawInput) { in.Metric = "mouthfeel" },
			expectError: true,
		},
		{
			name:        "window below one day",
			mutate:      func(in *ConfigRawInput) { in.Window = 0 },
			expectError: true,
		},
		{
			name:        "limit below one",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "limit above maximum",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "precision out of range",
			mutate:      func(in *ConfigRawInput) { in.Precision = 7 },
			expectError: true,
		},
		{
			name:        "unknown output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "unknown cache backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "oracle" },
			expectError: true,
		},
		{
			name: "mysql cache backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "empty history backend treated as none",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = ""
			},
			expectError: false,
		},
		{
			name: "comparison beans parsed from flag",
			mutate: func(in *ConfigRawInput) {
				in.Beans = "kenya-aa, ethiopia-yirgacheffe"
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, schema.MetricScore, cfg.Metric)
			assert.False(t, cfg.Now.IsZero())
		})
	}
}

func TestProcessAndValidateBeans(t *testing.T) {
	input := validInput()
	input.Beans = " kenya-aa ,ethiopia-yirgacheffe,, "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"kenya-aa", "ethiopia-yirgacheffe"}, cfg.Beans)
}

func TestProcessScoringOverrides(t *testing.T) {
	decay := 0.8
	input := validInput()
	input.Scoring.DecayK = &decay

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.InDelta(t, 0.8, cfg.Scoring.DecayK, 1e-12)

	// Untouched constants keep their defaults.
	defaults := DefaultScoringConfig()
	assert.InDelta(t, defaults.TargetExtraction, cfg.Scoring.TargetExtraction, 1e-12)
	assert.InDelta(t, defaults.SigmaTDS, cfg.Scoring.SigmaTDS, 1e-12)
}

func TestProcessScoringRejectsBadCalibration(t *testing.T) {
	sigma := -1.0
	input := validInput()
	input.Scoring.SigmaExtraction = &sigma

	cfg := &Config{}
	err := ProcessAndValidate(cfg, input)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestProcessPolarityOverrides(t *testing.T) {
	input := validInput()
	input.Polarity = map[string]string{"grind_size": "higher"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.HigherIsBetter, cfg.Polarity[schema.MetricGrindSize])

	// Non-overridden metrics keep their defaults.
	assert.Equal(t, schema.DefaultPolarity[schema.MetricScore], cfg.Polarity[schema.MetricScore])
}

func TestProcessPolarityRejectsUnknowns(t *testing.T) {
	tests := []struct {
		name     string
		polarity map[string]string
	}{
		{name: "unknown metric", polarity: map[string]string{"mouthfeel": "higher"}},
		{name: "unknown direction", polarity: map[string]string{"rating": "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Polarity = tt.polarity
			err := ProcessAndValidate(&Config{}, input)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Beans = "kenya-aa,brazil-santos"
	require.NoError(t, ProcessAndValidate(cfg, input))

	clone := cfg.Clone()
	clone.Beans[0] = "mutated"
	clone.Polarity[schema.MetricScore] = schema.LowerIsBetter
	clone.BeanID = "other"

	assert.Equal(t, "kenya-aa", cfg.Beans[0])
	assert.Equal(t, schema.HigherIsBetter, cfg.Polarity[schema.MetricScore])
	assert.Empty(t, cfg.BeanID)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{name: "sqlite without connection string", backend: schema.SQLiteBackend, connStr: "", expectError: false},
		{name: "none ignores connection string", backend: schema.NoneBackend, connStr: "whatever", expectError: false},
		{name: "mysql without connection string", backend: schema.MySQLBackend, connStr: "", expectError: true},
		{name: "mysql well formed", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/brews", expectError: false},
		{name: "mysql malformed", backend: schema.MySQLBackend, connStr: "not-a-dsn", expectError: true},
		{name: "postgresql without connection string", backend: schema.PostgreSQLBackend, connStr: "", expectError: true},
		{name: "postgresql well formed", backend: schema.PostgreSQLBackend, connStr: "host=localhost port=5432 user=postgres", expectError: false},
		{name: "unsupported backend", backend: schema.DatabaseBackend("oracle"), connStr: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, parseYesNo("yes", false))
	assert.True(t, parseYesNo("TRUE", false))
	assert.True(t, parseYesNo(" on ", false))
	assert.False(t, parseYesNo("no", true))
	assert.False(t, parseYesNo("0", true))
	assert.True(t, parseYesNo("maybe", true))
	assert.False(t, parseYesNo("", false))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "brewprof"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "brewprof", profile.Prefix)
}
