// Package logging provides structured logging for hierbit's background
// collaborators.
//
// # Overview
//
// The logging package provides a structured logging interface with support for:
//
//   - Multiple log levels (debug, info, warn, error)
//   - Text and JSON output formats
//   - A closed Component vocabulary and Field name constants, so the
//     chain controller, the reclaimer, the benchmark harness, and the
//     serve command tag their lines the same way instead of each
//     spelling "component" or "groups_reclaimed" out by hand
//   - Run ID tracking, prefixed by Component, used to correlate every
//     line a single bench run or reclaim cycle produces
//   - Field-based contextual logging
//
// # Creating a Logger
//
// Create a logger with configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stderr",
//	})
//
// Or use defaults:
//
//	logger := logging.NewDefault() // Info level, text format, stdout
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
//
// # Log Levels
//
// Four log levels are supported:
//
//	logger.Debug("detailed debugging info", "key", "value")
//	logger.Info("informational message", "key", "value")
//	logger.Warn("warning message", "key", "value")
//	logger.Error("error message", "key", "value")
//
// Parse level from string:
//
//	level := logging.ParseLevel("debug") // Returns LevelDebug
//
// # Components and Fields
//
// hierbit's collaborators are a fixed, closed set (see fields.go):
// ComponentChain, ComponentGC, ComponentBench, ComponentSource,
// ComponentOracle, and ComponentServe. WithComponent tags a logger so
// every line it emits carries the same spelling:
//
//	reclaimLog := logger.WithComponent(logging.ComponentGC)
//	reclaimLog.Info("reclaim cycle finished",
//	    logging.FieldGroupsReclaimed, 3,
//	    logging.FieldOldestVisibleCSN, 118,
//	    logging.FieldDurationMS, 2,
//	)
//
// Output (JSON format):
//
//	{
//	    "ts": "2026-02-18T10:30:00Z",
//	    "level": "info",
//	    "msg": "reclaim cycle finished",
//	    "component": "gc",
//	    "groups_reclaimed": 3,
//	    "oldest_visible_csn": 118,
//	    "duration_ms": 2
//	}
//
// # Run ID Tracking
//
// Add an identifier for tracing a bench run or reclaim cycle across log
// lines. GenerateRunID prefixes the ID with component, so interleaved
// output from several collaborators stays distinguishable at a glance:
//
//	runID := logging.GenerateRunID(logging.ComponentBench) // "bench-688888c0-0001-a1b2c3d4"
//	runLogger := logger.WithRunID(runID)
//
//	runLogger.Info("insert phase starting") // Includes run_id field
//
// # Contextual Fields
//
// Create loggers with persistent fields:
//
//	workerLogger := logger.WithFields(
//	    "worker_id", id,
//	    "phase", "insert",
//	)
//
//	// All subsequent logs include these fields
//	workerLogger.Info("claimed work item")
//	workerLogger.Info("insert finalized")
//
// # Output Formats
//
// Text format (human-readable):
//
//	2026-02-18T10:30:00Z [info] reclaim cycle finished component=gc groups_reclaimed=3
//
// JSON format (machine-parseable):
//
//	{"ts":"2026-02-18T10:30:00Z","level":"info","msg":"reclaim cycle finished",...}
//
// # Output Destinations
//
// Configure output destination:
//
//	logging.Config{Output: "stdout"}              // Standard output
//	logging.Config{Output: "stderr"}              // Standard error
//	logging.Config{Output: "/var/log/hierbit.log"} // File path
package logging
