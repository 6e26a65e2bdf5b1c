package transport

import "errors"

// Would-block sentinels and transport errors.
var (
	// ErrWantRead indicates the operation needs the transport to
	// become readable before it can make progress.
	ErrWantRead = errors.New("transport: want read")

	// ErrWantWrite indicates the operation needs the transport to
	// become writable before it can make progress.
	ErrWantWrite = errors.New("transport: want write")

	// ErrNotConnected is returned by Send/Recv before Connect.
	ErrNotConnected = errors.New("transport: not connected")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("transport: closed")
)

// IsWouldBlock reports whether err is a would-block sentinel.
// Would-block results must be retried, never treated as failures.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWantRead) || errors.Is(err, ErrWantWrite)
}
