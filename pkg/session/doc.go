// Package session implements the client session driver: it owns the
// handshake state machine, flushes a single request through a
// non-blocking secure engine, and accumulates the response until a
// set of success markers is observed or the peer closes.
//
// # Driver loop
//
// A Session is bound to exactly one transport.Transport and performs
// at most one handshake; it is torn down, never reused. Start walks
//
//	UNCONFIGURED -> CONFIGURED -> CONNECTING -> HANDSHAKING ->
//	ESTABLISHED
//
// or ends in FAILED, which is terminal. Every engine operation obeys
// the retry contract of package transport: would-block results are
// retried (bounded by the RetryPolicy), fatal results unwind straight
// to teardown.
//
// The record-layer engine performing the actual handshake and
// symmetric encryption is opaque to the driver; it is injected via
// the Engine interface. NewTLSEngine is the default implementation.
package session
