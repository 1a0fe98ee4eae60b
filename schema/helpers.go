package schema

import "fmt"

// Brewing control chart zone thresholds (percent).
const (
	weakMaxTDS         = 1.15
	idealMaxTDS        = 1.35
	underMaxExtraction = 18.0
	idealMaxExtraction = 22.0
)

// CategorizeStrength buckets a TDS measurement into Weak/Ideal/Strong.
func CategorizeStrength(tdsPct float64) string {
	switch {
	case tdsPct < weakMaxTDS:
		return "Weak"
	case tdsPct <= idealMaxTDS:
		return "Ideal"
	default:
		return "Strong"
	}
}

// CategorizeExtraction buckets an extraction yield into Under/Ideal/Over.
func CategorizeExtraction(extractionPct float64) string {
	switch {
	case extractionPct < underMaxExtraction:
		return "Under"
	case extractionPct <= idealMaxExtraction:
		return "Ideal"
	default:
		return "Over"
	}
}

// ClassifyZone returns the control chart zone label for a brew,
// e.g. "Ideal-Ideal" or "Under-Strong".
func ClassifyZone(extractionPct, tdsPct float64) string {
	return fmt.Sprintf("%s-%s", CategorizeExtraction(extractionPct), CategorizeStrength(tdsPct))
}

// Float returns a pointer to v. Convenience for building samples with
// optional fields.
func Float(v float64) *float64 {
	return &v
}
