// Package core has core logic for scoring, trend and comparison analytics.
package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brewkit/brewmetrics/internal/brewcsv"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/internal/iocache"
	"github.com/brewkit/brewmetrics/internal/outwriter"
	"github.com/brewkit/brewmetrics/schema"
)

// ExecutorFunc defines the function signature for executing different analytics operations.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// newService builds the analytics service from the configured scoring
// constants, backed by the global cache manager.
func newService(cfg *contract.Config) (*AnalyticsService, error) {
	engine, err := NewScoreEngine(cfg.Scoring)
	if err != nil {
		return nil, err
	}
	return NewAnalyticsService(engine, cfg.Polarity, iocache.Manager), nil
}

// loadSamples reads and validates the brew log. Malformed rows are skipped
// with a warning; only a missing file or unusable header is fatal.
func loadSamples(cfg *contract.Config) ([]schema.BrewSample, error) {
	result, err := brewcsv.Load(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	if n := len(result.Problems); n > 0 {
		contract.LogWarn(fmt.Sprintf("skipped %d malformed rows in %s", n, cfg.CSVPath), nil)
	}
	return result.Samples, nil
}

// loadServiceAndSamples is the shared preamble for every analytics run.
func loadServiceAndSamples(ctx context.Context, cfg *contract.Config, operation string) (*AnalyticsService, []schema.BrewSample, error) {
	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg, operation)
	}
	samples, err := loadSamples(cfg)
	if err != nil {
		return nil, nil, err
	}
	service, err := newService(cfg)
	if err != nil {
		return nil, nil, err
	}
	return service, samples, nil
}

// scoreAll attaches a score, gradient and zone to every sample.
// Samples whose measurements cannot be scored are dropped with a warning.
func scoreAll(engine *ScoreEngine, samples []schema.BrewSample) []schema.ScoredSample {
	scored := make([]schema.ScoredSample, 0, len(samples))
	for _, s := range samples {
		result, err := engine.ScoreSample(&s)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("cannot score brew %s", s.BrewID), err)
			continue
		}
		scored = append(scored, schema.ScoredSample{Sample: s, Result: result})
	}
	return scored
}

// persistHistory records scored brews in the history store, when one is
// connected. Persistence failures never fail the analysis run.
func persistHistory(scored []schema.ScoredSample) {
	store := iocache.Manager.GetHistoryStore()
	if store == nil {
		return
	}
	for _, s := range scored {
		if s.Sample.BrewID == "" {
			continue
		}
		if err := store.RecordBrew(s); err != nil {
			contract.LogWarn(fmt.Sprintf("cannot record brew %s in history", s.Sample.BrewID), err)
		}
	}
}

// GetBrewScoreResults scores every brew in the log and returns a ranked
// listing, recording each scored brew in the history store along the way.
func GetBrewScoreResults(ctx context.Context, cfg *contract.Config) ([]schema.ScoredSample, error) {
	service, samples, err := loadServiceAndSamples(ctx, cfg, "score")
	if err != nil {
		return nil, err
	}

	scored := scoreAll(service.engine, filterBean(samples, cfg.BeanID))
	persistHistory(scored)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Result.Score > scored[j].Result.Score
	})
	if cfg.ResultLimit > 0 && len(scored) > cfg.ResultLimit {
		scored = scored[:cfg.ResultLimit]
	}
	return scored, nil
}

// ExecuteBrewScores scores every brew in the log and prints a ranked listing.
// It serves as the main entry point for the 'score' operation.
func ExecuteBrewScores(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ranked, err := GetBrewScoreResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintScoreResults(ranked, cfg, duration)
}

// GetBrewTrendResults runs the trend analysis for the configured metric and window.
func GetBrewTrendResults(ctx context.Context, cfg *contract.Config) (schema.TrendResult, error) {
	service, samples, err := loadServiceAndSamples(ctx, cfg, "trend")
	if err != nil {
		return schema.TrendResult{}, err
	}
	return service.ImprovementTrend(filterBean(samples, cfg.BeanID), cfg.Metric, cfg.WindowDays, cfg.Now), nil
}

// ExecuteBrewTrend runs the trend analysis and prints the result.
func ExecuteBrewTrend(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetBrewTrendResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintTrendResults(&result, cfg, duration)
}

// GetBeanComparisonResults compares the configured beans on one metric.
func GetBeanComparisonResults(ctx context.Context, cfg *contract.Config) (schema.ComparisonResult, error) {
	if len(cfg.Beans) < 2 {
		return schema.ComparisonResult{}, contract.InvalidParamf("comparison needs at least 2 beans, got %d", len(cfg.Beans))
	}
	service, samples, err := loadServiceAndSamples(ctx, cfg, "compare")
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	return service.BeanComparison(samples, cfg.Beans, cfg.Metric), nil
}

// ExecuteBeanComparison compares the configured beans and prints the result.
func ExecuteBeanComparison(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetBeanComparisonResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintComparisonResults(&result, cfg, duration)
}

// GetCorrelationResults computes the parameter/outcome correlation matrix,
// served from the result cache when a fresh entry exists.
func GetCorrelationResults(ctx context.Context, cfg *contract.Config) (schema.CorrelationResult, error) {
	service, samples, err := loadServiceAndSamples(ctx, cfg, "correlate")
	if err != nil {
		return schema.CorrelationResult{}, err
	}
	return service.CachedParameterCorrelations(filterBean(samples, cfg.BeanID)), nil
}

// ExecuteCorrelations computes the correlation matrix and prints it.
func ExecuteCorrelations(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetCorrelationResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintCorrelationResults(&result, cfg, duration)
}

// GetOptimalBrewResults finds the best-scoring recorded brew.
func GetOptimalBrewResults(ctx context.Context, cfg *contract.Config) (schema.OptimalParams, error) {
	service, samples, err := loadServiceAndSamples(ctx, cfg, "optimal")
	if err != nil {
		return schema.OptimalParams{}, err
	}
	return service.OptimalParameters(samples, cfg.BeanID), nil
}

// ExecuteOptimalBrew finds the best-scoring recorded brew and prints it.
func ExecuteOptimalBrew(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetOptimalBrewResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintOptimalResults(&result, cfg, duration)
}

// GetConsistencyResults measures brewing repeatability.
func GetConsistencyResults(ctx context.Context, cfg *contract.Config) (schema.ConsistencyResult, error) {
	service, samples, err := loadServiceAndSamples(ctx, cfg, "consistency")
	if err != nil {
		return schema.ConsistencyResult{}, err
	}
	return service.ConsistencyMetrics(samples, cfg.BeanID), nil
}

// ExecuteConsistency measures brewing repeatability and prints the result.
func ExecuteConsistency(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetConsistencyResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintConsistencyResults(&result, cfg, duration)
}

// GetSummaryResults condenses the whole brew log into a single overview.
func GetSummaryResults(ctx context.Context, cfg *contract.Config) (schema.SummaryResult, error) {
	service, samples, err := loadServiceAndSamples(ctx, cfg, "summary")
	if err != nil {
		return schema.SummaryResult{}, err
	}
	return service.Summary(samples, cfg.Now), nil
}

// ExecuteSummary prints the high-level overview of the whole brew log.
func ExecuteSummary(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetSummaryResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintSummaryResults(&result, cfg, duration)
}

// filterBean restricts samples to one bean when a filter is set.
func filterBean(samples []schema.BrewSample, beanID string) []schema.BrewSample {
	if beanID == "" {
		return samples
	}
	filtered := make([]schema.BrewSample, 0, len(samples))
	for _, s := range samples {
		if s.BeanID == beanID {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
