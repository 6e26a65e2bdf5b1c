package session

import (
	"io"

	"github.com/secfetch/secfetch-go/pkg/cert"
	"github.com/secfetch/secfetch-go/pkg/transport"
)

// Engine drives the handshake and record layer of a secure session
// over a Transport. The driver treats it as opaque; only the retry
// contract matters.
//
// Handshake, Read and Write report would-block via the package
// transport sentinels (ErrWantRead/ErrWantWrite). A would-block
// result must be retried and is never an error; any other non-nil
// error is fatal and must not be retried. Read reports a clean peer
// close as io.EOF. An operation either makes progress or would-block:
// a partial transfer is returned as (n, nil), never combined with a
// would-block error.
type Engine interface {
	// Handshake advances the handshake. nil means the session is
	// established.
	Handshake() error

	// Write sends up to len(p) bytes of application data.
	Write(p []byte) (int, error)

	// Read receives up to len(p) bytes of application data.
	Read(p []byte) (int, error)

	// VerifyReport returns the diagnostic trust evaluation for the
	// peer. Only meaningful after Handshake has returned nil.
	VerifyReport() cert.Report

	// Close releases engine resources. It does not close the
	// transport; the Session owns that.
	Close() error
}

// EngineConfig carries the session parameters an Engine needs.
type EngineConfig struct {
	// ServerName is the expected peer identity, validated against
	// the presented certificate during the handshake.
	ServerName string

	// Anchors is the trust anchor set for chain validation.
	Anchors *cert.AnchorSet

	// AuthMode selects how certificate verification failures are
	// treated during the handshake.
	AuthMode AuthMode

	// Rand is the seeded randomness source.
	Rand io.Reader

	// Retry bounds any internal retry loops the engine runs against
	// the transport.
	Retry RetryPolicy
}

// EngineFactory builds an Engine bound to a Transport. The transport
// need not be connected yet.
type EngineFactory func(tr transport.Transport, cfg EngineConfig) (Engine, error)
