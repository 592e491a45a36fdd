package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds timing information for model construction and use.
type TimingStats struct {
	TotalTime       time.Duration
	ModelBuildTime  time.Duration
	ForwardPassTime time.Duration
	WeightsIOTime   time.Duration
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	if stats.TotalTime <= 0 {
		return
	}
	fmt.Fprintf(Output, "  Model build: %v (%.1f%%)\n", stats.ModelBuildTime,
		float64(stats.ModelBuildTime)/float64(stats.TotalTime)*100)
	fmt.Fprintf(Output, "  Forward pass: %v (%.1f%%)\n", stats.ForwardPassTime,
		float64(stats.ForwardPassTime)/float64(stats.TotalTime)*100)
	fmt.Fprintf(Output, "  Weights I/O: %v (%.1f%%)\n", stats.WeightsIOTime,
		float64(stats.WeightsIOTime)/float64(stats.TotalTime)*100)
}
