// Package pkg provides shared utilities for the chordkb firmware packages.
//
// This package contains common functionality used by the chord engine,
// layout loaders, report encoder and command-line tools, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for chord, layout and report errors
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with component context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentLayout, "layout reloaded", "layers", 3)
//
// # Errors
//
// Common errors are defined as sentinel values and wrapped with context:
//
//	if errors.Is(err, pkg.ErrDelegationCycle) {
//	    // Reject the layout
//	}
package pkg
