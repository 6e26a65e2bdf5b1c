// Package log provides structured protocol capture for the session
// driver.
//
// This package defines the Logger interface and Event types for
// recording session activity (state transitions, handshake progress,
// buffered transfers, scan results, errors). It is separate from
// operational logging (slog): protocol capture produces a complete
// machine-readable trace of one session for debugging and analysis.
//
// Applications configure capture by providing a Logger:
//
//	// For development: mirror events into slog
//	cfg.Capture = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write CBOR events to a file
//	cfg.Capture, _ = log.NewFileLogger("fetch.slog")
//
// Events are encoded with CBOR integer keys for compactness.
package log
