package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brewkit/brewmetrics/schema"
	"github.com/fatih/color"
)

// Quality label constants for score columns.
const (
	ExcellentValue = "Excellent"
	GoodValue      = "Good"
	FairValue      = "Fair"
	PoorValue      = "Poor"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // near the optimal point
	GoodColor      = color.New(color.FgCyan)              // solid cup, minor drift
	FairColor      = color.New(color.FgYellow)            // noticeable drift
	PoorColor      = color.New(color.FgRed, color.Bold)   // far from the zone
)

// GetPlainLabel returns a plain text quality label for a 0-100 brew score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 90:
		return ExcellentValue
	case score >= 70:
		return GoodValue
	case score >= 50:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored quality label for console table output.
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// GetBandLabel returns a colored consistency band label.
func GetBandLabel(band schema.ConsistencyBand, useColors bool) string {
	text := string(band)
	if !useColors {
		return text
	}
	switch band {
	case schema.BandExcellent:
		return ExcellentColor.Sprint(text)
	case schema.BandGood:
		return GoodColor.Sprint(text)
	case schema.BandFair:
		return FairColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs a fatal error to stderr and exits.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a non-fatal warning to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for result caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".brewmetrics_cache.db"
	}
	return filepath.Join(homeDir, ".brewmetrics_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for brew history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".brewmetrics_history.db"
	}
	return filepath.Join(homeDir, ".brewmetrics_history.db")
}

// LogAnalysisHeader prints a concise 2-line header for each analytics run.
func LogAnalysisHeader(cfg *Config, operation string) {
	source := cfg.CSVPath
	if source == "" {
		source = "stdin"
	}
	fmt.Printf("☕ Log: %s (%s)\n", source, operation)
	fmt.Printf("📅 Window: last %d days, %s\n", cfg.WindowDays, Fprintable(cfg.BeanID))
}
