package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge bounds how long a cached correlation matrix stays usable.
// The content hash already invalidates on data changes; the age bound
// guards against key collisions and thresholds changing between releases.
const cacheMaxAge = 7 * 24 * time.Hour

// CachedParameterCorrelations serves the correlation matrix through the
// result cache. The key hashes the sample content, so any edit to the log
// invalidates the entry. With no cache configured it degrades to a direct
// computation.
func (a *AnalyticsService) CachedParameterCorrelations(samples []schema.BrewSample) schema.CorrelationResult {
	if a.mgr == nil {
		return a.ParameterCorrelations(samples)
	}
	store := a.mgr.GetResultStore()
	if store == nil {
		return a.ParameterCorrelations(samples)
	}

	key := correlationCacheKey(samples)

	// Check for cache hit
	if result := checkCorrelationHit(store, key); result != nil {
		return *result
	}

	// Cache miss: compute and store
	result := a.ParameterCorrelations(samples)
	if data, err := json.Marshal(result); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	return result
}

// checkCorrelationHit attempts to retrieve and validate a cached result
func checkCorrelationHit(store contract.CacheStore, key string) *schema.CorrelationResult {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var result schema.CorrelationResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// correlationCacheKey fingerprints the sample collection. The hash folds
// in every field that feeds the correlation matrix, in input order, so
// any add, drop, edit, or reorder yields a different key.
func correlationCacheKey(samples []schema.BrewSample) string {
	h := sha256.New()

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(samples)))
	h.Write(lenBuf[:])

	writeFloat := func(v float64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeOpt := func(v *float64) {
		if v == nil {
			h.Write([]byte{0})
			return
		}
		h.Write([]byte{1})
		writeFloat(*v)
	}

	for i := range samples {
		s := &samples[i]
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00", s.BrewID, s.BeanID, s.Timestamp.Unix())
		writeFloat(s.ExtractionPct)
		writeFloat(s.TDSPct)
		writeFloat(s.BrewRatio)
		writeOpt(s.Rating)
		writeOpt(s.GrindSize)
		writeOpt(s.WaterTempC)
		writeOpt(s.BloomTimeSec)
		writeOpt(s.TotalTimeSec)
	}

	return fmt.Sprintf("%x", h.Sum(nil))
}
