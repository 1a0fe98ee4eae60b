package iocache

import (
	"errors"
	"fmt"
	"time"

	"github.com/brewkit/brewmetrics/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of brew history to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalBrews == 0 {
		return errors.New("no brew history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total recorded brews: %d\n", status.TotalBrews)

	// Retrieve the full scored history
	brews, err := store.ListBrews(time.Time{})
	if err != nil {
		return fmt.Errorf("failed to retrieve brew history: %w", err)
	}

	// Convert to Parquet format and write
	records := parquet.ConvertScoredSamples(brews)
	if err := parquet.WriteBrewRecordsParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write brew history: %w", err)
	}
	fmt.Printf("Exported %d brews to: %s\n", len(records), outputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
