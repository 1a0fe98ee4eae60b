package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewkit/brewmetrics/schema"
)

func newSQLiteCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestCacheStoreRoundtrip(t *testing.T) {
	store := newSQLiteCacheStore(t)

	now := time.Now().Unix()
	require.NoError(t, store.Set("key1", []byte(`{"cells":[]}`), 1, now))

	value, version, ts, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"cells":[]}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)
}

func TestCacheStoreOverwrite(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("key1", []byte("old"), 1, 100))
	require.NoError(t, store.Set("key1", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestCacheStoreMissingKey(t *testing.T) {
	store := newSQLiteCacheStore(t)

	_, _, _, err := store.Get("never-stored")
	assert.Error(t, err)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(resultsTable, schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Set is a no-op, Get always misses
	require.NoError(t, store.Set("key1", []byte("value"), 1, 100))
	_, _, _, err = store.Get("key1")
	assert.Error(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestCacheStoreStatus(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 200))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, int64(200), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
}

func TestCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad; DROP TABLE x", schema.SQLiteBackend, filepath.Join(t.TempDir(), "c.db"))
	assert.Error(t, err)
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"analytics_cache", false},
		{"_private", false},
		{"Table9", false},
		{"", true},
		{"9starts_with_digit", true},
		{"has-dash", true},
		{"has space", true},
	}
	for _, tc := range tests {
		err := validateTableName(tc.name)
		if tc.wantErr {
			assert.Error(t, err, tc.name)
		} else {
			assert.NoError(t, err, tc.name)
		}
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`brew_history`", quoteTableName("brew_history", schema.MySQLBackend))
	assert.Equal(t, `"brew_history"`, quoteTableName("brew_history", schema.PostgreSQLBackend))
	assert.Equal(t, `"brew_history"`, quoteTableName("brew_history", schema.SQLiteBackend))
}

func newSQLiteHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func scoredFixture(brewID string, ts time.Time, score float64) schema.ScoredSample {
	return schema.ScoredSample{
		Sample: schema.BrewSample{
			BrewID:        brewID,
			BeanID:        "ethiopia-natural",
			Timestamp:     ts,
			ExtractionPct: 20.0,
			TDSPct:        1.30,
			BrewRatio:     65.0,
			Rating:        schema.Float(4.0),
			Zone:          "Ideal-Ideal",
		},
		Result: schema.ScoreResult{
			Score:    score,
			Distance: 0.5,
			GradE:    -0.1,
			GradT:    1.2,
			Optimal:  schema.OptimalPoint{Extraction: 19.33, TDS: 1.26},
		},
	}
}

func TestHistoryStoreRoundtrip(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordBrew(scoredFixture("b1", ts, 92.5)))

	brews, err := store.ListBrews(time.Time{})
	require.NoError(t, err)
	require.Len(t, brews, 1)

	got := brews[0]
	assert.Equal(t, "b1", got.Sample.BrewID)
	assert.Equal(t, "ethiopia-natural", got.Sample.BeanID)
	assert.True(t, got.Sample.Timestamp.Equal(ts))
	assert.InDelta(t, 92.5, got.Result.Score, 1e-9)
	require.NotNil(t, got.Sample.Rating)
	assert.InDelta(t, 4.0, *got.Sample.Rating, 1e-9)
	assert.Nil(t, got.Sample.GrindSize) // never recorded
	assert.Equal(t, "Ideal-Ideal", got.Sample.Zone)
	require.NotNil(t, got.Sample.Score)
	assert.InDelta(t, 92.5, *got.Sample.Score, 1e-9)
}

func TestHistoryStoreReplacesSameBrewID(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordBrew(scoredFixture("b1", ts, 50.0)))
	require.NoError(t, store.RecordBrew(scoredFixture("b1", ts, 75.0)))

	brews, err := store.ListBrews(time.Time{})
	require.NoError(t, err)
	require.Len(t, brews, 1)
	assert.InDelta(t, 75.0, brews[0].Result.Score, 1e-9)
}

func TestHistoryStoreSinceFilterAndOrder(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordBrew(scoredFixture("b3", base.AddDate(0, 0, 2), 80)))
	require.NoError(t, store.RecordBrew(scoredFixture("b1", base, 70)))
	require.NoError(t, store.RecordBrew(scoredFixture("b2", base.AddDate(0, 0, 1), 75)))

	brews, err := store.ListBrews(base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, brews, 2)
	assert.Equal(t, "b2", brews[0].Sample.BrewID)
	assert.Equal(t, "b3", brews[1].Sample.BrewID)
}

func TestHistoryStoreRequiresBrewID(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	scored := scoredFixture("", time.Now(), 80)
	assert.Error(t, store.RecordBrew(scored))
}

func TestHistoryStoreStatus(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalBrews)

	require.NoError(t, store.RecordBrew(scoredFixture("b1", ts, 92.5)))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalBrews)
	assert.True(t, status.LastBrewTime.Equal(ts))
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.RecordBrew(scoredFixture("b1", time.Now(), 80)))
	brews, err := store.ListBrews(time.Time{})
	require.NoError(t, err)
	assert.Empty(t, brews)
}
