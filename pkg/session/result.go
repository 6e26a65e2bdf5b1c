package session

import (
	"fmt"

	"github.com/secfetch/secfetch-go/pkg/cert"
	"github.com/secfetch/secfetch-go/pkg/log"
)

// Result is the terminal, all-or-nothing outcome of Start: either the
// session failed with a FatalError, or the caller receives this
// accumulated view.
type Result struct {
	// SessionID is the session's UUID.
	SessionID string

	// Markers maps each required marker to whether it was found.
	// Found-state is monotonic: once found, a marker stays found.
	Markers map[string]bool

	// Response is the accumulated response fragment.
	Response []byte

	// Verify is the diagnostic trust evaluation recorded after the
	// handshake completed.
	Verify cert.Report

	// PeerClosed is set when the peer closed cleanly before every
	// marker was found.
	PeerClosed bool

	// BufferFull is set when accumulation stopped because the
	// transfer buffer reached capacity.
	BufferFull bool
}

// Found reports whether a marker was observed.
func (r *Result) Found(marker string) bool { return r.Markers[marker] }

// AllFound reports whether every required marker was observed.
func (r *Result) AllFound() bool {
	for _, found := range r.Markers {
		if !found {
			return false
		}
	}
	return true
}

// FatalError reports an unrecoverable session failure: the stage it
// occurred in plus the underlying reason.
type FatalError struct {
	Stage log.Stage
	Err   error
}

// Error returns "stage: reason".
func (e *FatalError) Error() string {
	return fmt.Sprintf("session %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error { return e.Err }
