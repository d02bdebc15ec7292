package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `hierbit - hierarchical differential bitmap version chain

Usage:
  hierbit <command> [options]

Commands:
  bench       Run an insert/lookup benchmark
  serve       Expose Prometheus metrics over HTTP while running a bench load
  version     Show version information

Use "hierbit <command> -h" for more information about a command.
`)
}

// printBenchUsage prints the bench command usage.
func printBenchUsage(w io.Writer) {
	fmt.Fprint(w, `Run an insert/lookup benchmark

Usage:
  hierbit bench [options]

Options:
  -width int
        Bitmap width in bytes, must be even (default 7500)
  -fanout int
        Versions per reference group (default 9)
  -inserts int
        Number of versions to insert (default 20)
  -flips int
        Bits flipped between successive versions (default 1)
  -insert-workers int
        Goroutines used for the insert phase, 0 = number of CPUs (default 0)
  -query-workers int
        Goroutines used for the lookup-verification phase, 0 = number of CPUs (default 0)
  -seed int
        Random seed for bitmap generation (default 1)
  -log-level string
        Log level: debug, info, warn, error (default "info")
  -h, -help
        Show this help message
`)
}

// printServeUsage prints the serve command usage.
func printServeUsage(w io.Writer) {
	fmt.Fprint(w, `Expose Prometheus metrics over HTTP while running a bench load

Usage:
  hierbit serve [options]

Options:
  -address string
        Listen address for the metrics endpoint (default ":9090")
  -width int
        Bitmap width in bytes, must be even (default 7500)
  -fanout int
        Versions per reference group (default 9)
  -reclaim-interval duration
        Interval between background reclaim cycles (default 30s)
  -log-level string
        Log level: debug, info, warn, error (default "info")
  -h, -help
        Show this help message
`)
}

// printVersionUsage prints the version command usage.
func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Show version information

Usage:
  hierbit version [options]

Options:
  -short
        Show only version number
  -h, -help
        Show this help message
`)
}
