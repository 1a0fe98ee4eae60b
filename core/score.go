// Package core has core logic for scoring brews and computing analytics
// over brew sample collections.
package core

import (
	"math"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/schema"
)

// Physically plausible clamp ranges applied before scoring. Values outside
// are a measurement anomaly, not a reason to reject the brew.
const (
	maxExtractionPct = 30.0
	maxTDSPct        = 3.0
)

// gradientEpsilon is the distance below which the gradient is taken as zero
// to avoid dividing by a vanishing norm at the optimal point.
const gradientEpsilon = 1e-10

// ScoreEngine computes brew-ratio-aware quality scores. For each brew
// ratio R (g/L), achievable outcomes lie on the line tds = (R/1000)*extraction;
// the engine projects the global ideal onto that line in a sigma-normalized
// metric and scores by exponential decay of the normalized distance.
//
//	score = 100 * exp(-k * d),  d = sqrt((dE/sigmaE)^2 + (dT/sigmaT)^2)
//
// The engine is stateless apart from its calibration and safe for
// concurrent use.
type ScoreEngine struct {
	cfg contract.ScoringConfig

	// Precomputed projection coefficients:
	// E_opt(r) = (a + b*r) / (c + d*r^2) with r = ratio/1000.
	a, b, c, d float64
}

// NewScoreEngine builds an engine from a validated calibration.
func NewScoreEngine(cfg contract.ScoringConfig) (*ScoreEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sigmaE2 := cfg.SigmaExtraction * cfg.SigmaExtraction
	sigmaT2 := cfg.SigmaTDS * cfg.SigmaTDS
	return &ScoreEngine{
		cfg: cfg,
		a:   cfg.TargetExtraction / sigmaE2,
		b:   cfg.TargetTDS / sigmaT2,
		c:   1 / sigmaE2,
		d:   1 / sigmaT2,
	}, nil
}

// DefaultScoreEngine returns an engine with the literature calibration.
func DefaultScoreEngine() *ScoreEngine {
	engine, err := NewScoreEngine(contract.DefaultScoringConfig())
	if err != nil {
		// The default calibration is a compile-time constant set.
		panic(err)
	}
	return engine
}

// OptimalPoint returns the optimal (extraction, TDS) outcome for a brew
// ratio. It is the closest point on the ratio's constraint line to the
// global ideal under the sigma-normalized metric, solved in closed form:
//
//	E_opt = (E*/sigmaE^2 + r*T*/sigmaT^2) / (1/sigmaE^2 + r^2/sigmaT^2)
//	T_opt = r * E_opt, r = ratio/1000
//
// The result is deterministic and continuous in the ratio.
func (e *ScoreEngine) OptimalPoint(brewRatio float64) (schema.OptimalPoint, error) {
	if err := checkFinite("brew_ratio", brewRatio); err != nil {
		return schema.OptimalPoint{}, err
	}
	if brewRatio <= 0 {
		return schema.OptimalPoint{}, contract.InvalidParamf("brew_ratio must be positive, got %v", brewRatio)
	}

	r := brewRatio / 1000
	eOpt := (e.a + e.b*r) / (e.c + e.d*r*r)
	return schema.OptimalPoint{Extraction: eOpt, TDS: r * eOpt}, nil
}

// Distance returns the normalized distance of a brew outcome from the
// optimal point for its ratio: zero at optimal, about one at a typical
// deviation. Exposed directly so callers can classify in-zone vs
// out-of-zone without the score nonlinearity.
func (e *ScoreEngine) Distance(extraction, tds, brewRatio float64) (float64, error) {
	d, _, err := e.distance(extraction, tds, brewRatio)
	return d, err
}

// Calculate scores one brew outcome. Extraction and TDS are clamped to
// physically plausible ranges before scoring (the caller's values are not
// mutated); the Clamped flag reports that this happened. The functional
// form guarantees the score stays within (0, 100] with 100 exactly at the
// optimal point, with no output clamping needed.
func (e *ScoreEngine) Calculate(extraction, tds, brewRatio float64) (schema.ScoreResult, error) {
	if err := checkFinite("extraction", extraction); err != nil {
		return schema.ScoreResult{}, err
	}
	if err := checkFinite("tds", tds); err != nil {
		return schema.ScoreResult{}, err
	}

	clampedE, okE := clamp(extraction, 0, maxExtractionPct)
	clampedT, okT := clamp(tds, 0, maxTDSPct)

	opt, err := e.OptimalPoint(brewRatio)
	if err != nil {
		return schema.ScoreResult{}, err
	}

	dE := (clampedE - opt.Extraction) / e.cfg.SigmaExtraction
	dT := (clampedT - opt.TDS) / e.cfg.SigmaTDS
	distance := math.Sqrt(dE*dE + dT*dT)
	score := 100 * math.Exp(-e.cfg.DecayK*distance)

	gradE, gradT := e.gradientAt(clampedE, clampedT, opt, distance, score)

	return schema.ScoreResult{
		Score:    score,
		Distance: distance,
		GradE:    gradE,
		GradT:    gradT,
		Optimal:  opt,
		Clamped:  !okE || !okT,
	}, nil
}

// Gradient returns the analytic partial derivatives of the score with
// respect to extraction and TDS at the given point. Derived by chain rule
// through the distance, not finite-differenced, so it is exact up to
// floating point.
func (e *ScoreEngine) Gradient(extraction, tds, brewRatio float64) (float64, float64, error) {
	result, err := e.Calculate(extraction, tds, brewRatio)
	if err != nil {
		return 0, 0, err
	}
	return result.GradE, result.GradT, nil
}

// distance computes the normalized distance plus the optimal point.
func (e *ScoreEngine) distance(extraction, tds, brewRatio float64) (float64, schema.OptimalPoint, error) {
	if err := checkFinite("extraction", extraction); err != nil {
		return 0, schema.OptimalPoint{}, err
	}
	if err := checkFinite("tds", tds); err != nil {
		return 0, schema.OptimalPoint{}, err
	}
	opt, err := e.OptimalPoint(brewRatio)
	if err != nil {
		return 0, schema.OptimalPoint{}, err
	}
	clampedE, _ := clamp(extraction, 0, maxExtractionPct)
	clampedT, _ := clamp(tds, 0, maxTDSPct)
	dE := (clampedE - opt.Extraction) / e.cfg.SigmaExtraction
	dT := (clampedT - opt.TDS) / e.cfg.SigmaTDS
	return math.Sqrt(dE*dE + dT*dT), opt, nil
}

// gradientAt evaluates the closed-form gradient:
//
//	d(score)/dE = -k * score * (E - E_opt) / (sigmaE^2 * d)
//
// and the analogous TDS partial. At the optimal point both partials vanish.
func (e *ScoreEngine) gradientAt(extraction, tds float64, opt schema.OptimalPoint, distance, score float64) (float64, float64) {
	if distance < gradientEpsilon {
		return 0, 0
	}
	sigmaE2 := e.cfg.SigmaExtraction * e.cfg.SigmaExtraction
	sigmaT2 := e.cfg.SigmaTDS * e.cfg.SigmaTDS
	gradE := -e.cfg.DecayK * score * (extraction - opt.Extraction) / (sigmaE2 * distance)
	gradT := -e.cfg.DecayK * score * (tds - opt.TDS) / (sigmaT2 * distance)
	return gradE, gradT
}

// ScoreSample scores a sample in place, attaching the unified score and the
// control chart zone. The returned result carries the full diagnostics.
func (e *ScoreEngine) ScoreSample(s *schema.BrewSample) (schema.ScoreResult, error) {
	result, err := e.Calculate(s.ExtractionPct, s.TDSPct, s.BrewRatio)
	if err != nil {
		return schema.ScoreResult{}, err
	}
	s.Score = schema.Float(result.Score)
	s.Zone = schema.ClassifyZone(s.ExtractionPct, s.TDSPct)
	return result, nil
}

// clamp restricts v to [lo, hi] and reports whether it was already inside.
func clamp(v, lo, hi float64) (float64, bool) {
	if v < lo {
		return lo, false
	}
	if v > hi {
		return hi, false
	}
	return v, true
}

// checkFinite rejects NaN and infinities so the engine never emits NaN
// scores silently.
func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return contract.InvalidParamf("%s must be a finite number, got %v", name, v)
	}
	return nil
}
