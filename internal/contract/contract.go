// Package contract provides interfaces and shared utilities for the
// brewmetrics CLI's internal architecture.
package contract

import (
	"time"

	"github.com/brewkit/brewmetrics/schema"
)

// CacheManager defines the interface for managing cache and history stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cached analytics results.
// Keys are content hashes of the input sample collection, so a changed
// brew log never serves a stale result.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for the durable brew history,
// recording each scored sample at ingest time.
type HistoryStore interface {
	// RecordBrew stores one scored sample. Re-recording the same brew id
	// replaces the previous row.
	RecordBrew(scored schema.ScoredSample) error

	// ListBrews returns scored samples in chronological order, newest last.
	// A zero since time means no lower bound.
	ListBrews(since time.Time) ([]schema.ScoredSample, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
