package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"
)

// TCP transport defaults.
const (
	// DefaultDialTimeout bounds Connect when the context carries no
	// deadline of its own.
	DefaultDialTimeout = 30 * time.Second

	// DefaultPollInterval is how long a Send/Recv may wait for the
	// socket before reporting would-block.
	DefaultPollInterval = 5 * time.Millisecond
)

// TCPConfig configures a TCPTransport.
type TCPConfig struct {
	// DialTimeout is the connection timeout (default: 30s).
	DialTimeout time.Duration

	// PollInterval is the per-call I/O deadline used to emulate
	// non-blocking operation (default: 5ms). A call that hits this
	// deadline without transferring anything reports would-block.
	PollInterval time.Duration

	// Logger receives diagnostics for transport failures. nil uses
	// slog.Default().
	Logger *slog.Logger
}

// TCPTransport adapts a TCP connection to the non-blocking Transport
// contract. Deadline timeouts are translated into the would-block
// sentinels; every other failure is fatal and carries the native
// error for diagnostics.
//
// TCPTransport is not safe for concurrent use; the session driver
// owns it for the lifetime of one session.
type TCPTransport struct {
	config TCPConfig
	logger *slog.Logger

	conn      net.Conn
	closeOnce sync.Once
	closed    bool
}

// NewTCP creates an unconnected TCPTransport.
func NewTCP(config TCPConfig) *TCPTransport {
	if config.DialTimeout == 0 {
		config.DialTimeout = DefaultDialTimeout
	}
	if config.PollInterval == 0 {
		config.PollInterval = DefaultPollInterval
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TCPTransport{config: config, logger: logger}
}

// Connect dials host:port.
func (t *TCPTransport) Connect(ctx context.Context, host string, port int) error {
	if t.closed {
		return ErrClosed
	}
	if t.conn != nil {
		return errors.New("transport: already connected")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.DialTimeout)
		defer cancel()
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		t.logger.Debug("transport connect failed", "addr", addr, "err", err)
		return fmt.Errorf("transport: connect %s: %w", addr, err)
	}

	t.conn = conn
	return nil
}

// Send writes up to len(p) bytes. A deadline timeout with no bytes
// transferred reports ErrWantWrite; a timeout after a partial
// transfer reports the partial count as progress.
func (t *TCPTransport) Send(p []byte) (int, error) {
	if t.conn == nil {
		if t.closed {
			return 0, ErrClosed
		}
		return 0, ErrNotConnected
	}

	_ = t.conn.SetWriteDeadline(time.Now().Add(t.config.PollInterval))
	n, err := t.conn.Write(p)
	if err != nil {
		if isTimeout(err) {
			if n > 0 {
				return n, nil
			}
			return 0, ErrWantWrite
		}
		t.logger.Debug("transport send failed", "err", err)
		return n, fmt.Errorf("transport: send: %w", err)
	}
	return n, nil
}

// Recv reads up to len(p) bytes. A deadline timeout reports
// ErrWantRead; a clean peer close reports io.EOF.
func (t *TCPTransport) Recv(p []byte) (int, error) {
	if t.conn == nil {
		if t.closed {
			return 0, ErrClosed
		}
		return 0, ErrNotConnected
	}

	_ = t.conn.SetReadDeadline(time.Now().Add(t.config.PollInterval))
	n, err := t.conn.Read(p)
	if err != nil {
		if isTimeout(err) {
			if n > 0 {
				return n, nil
			}
			return 0, ErrWantRead
		}
		if errors.Is(err, io.EOF) {
			return n, io.EOF
		}
		t.logger.Debug("transport recv failed", "err", err)
		return n, fmt.Errorf("transport: recv: %w", err)
	}
	return n, nil
}

// Close closes the connection. The socket is closed exactly once.
func (t *TCPTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.closed = true
		if t.conn != nil {
			err = t.conn.Close()
		}
	})
	return err
}

// LocalAddr returns the local network address, or nil before Connect.
func (t *TCPTransport) LocalAddr() net.Addr {
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

// RemoteAddr returns the peer network address, or nil before Connect.
func (t *TCPTransport) RemoteAddr() net.Addr {
	if t.conn == nil {
		return nil
	}
	return t.conn.RemoteAddr()
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Compile-time interface satisfaction checks.
var (
	_ Transport = (*TCPTransport)(nil)
	_ Addressed = (*TCPTransport)(nil)
)
