// main is the entry point for the brewmetrics CLI.
package main

import (
	"fmt"
	"os"

	"github.com/brewkit/brewmetrics/cmd"
	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/brewkit/brewmetrics/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Flush profiles and close store connections before deciding exit status.
	contract.LogWarn("could not stop profiling", cmd.StopProfiling())
	iocache.CloseCaching()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
