package transport

import (
	"context"
	"net"
)

// Transport is a non-blocking byte-stream transport bound to a single
// peer. Implemented by TCPTransport.
//
// Send and Recv follow the retry contract described in the package
// documentation: they return the exact number of bytes transferred,
// ErrWantWrite/ErrWantRead when the transport cannot make progress
// right now, io.EOF on a clean peer close (Recv only), and any other
// error for unrecoverable transport failures.
type Transport interface {
	// Connect establishes the transport-level connection to
	// host:port. Connect failures are fatal; there is no retry at
	// this layer.
	Connect(ctx context.Context, host string, port int) error

	// Send writes up to len(p) bytes without blocking.
	Send(p []byte) (int, error)

	// Recv reads up to len(p) bytes without blocking.
	Recv(p []byte) (int, error)

	// Close tears down the connection. Safe to call more than once;
	// the underlying socket is closed exactly once.
	Close() error
}

// Addressed is implemented by transports that can report their
// endpoint addresses. Optional; used for diagnostics only.
type Addressed interface {
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}
