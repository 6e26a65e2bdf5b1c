package session

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/secfetch/secfetch-go/pkg/cert"
	"github.com/secfetch/secfetch-go/pkg/transport"
)

// NewTLSEngine builds the production record-layer engine on top of
// crypto/tls. The standard stack cannot resume a suspended handshake,
// so the engine bridges the non-blocking transport to a blocking
// net.Conn that absorbs would-block internally, bounded by the
// configured retry policy. Callers of the engine therefore see plain
// progress-or-fatal results from Handshake.
func NewTLSEngine(tr transport.Transport, cfg EngineConfig) (Engine, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: cfg.ServerName,
		Rand:       cfg.Rand,
	}

	switch cfg.AuthMode {
	case AuthModeRequired:
		if cfg.Anchors.Len() == 0 {
			return nil, ErrNeedAnchors
		}
		tlsCfg.RootCAs = cfg.Anchors.Pool()
	case AuthModeOptional, AuthModeNone:
		// Verification failures must not abort the handshake; the
		// diagnostic report carries the outcome instead.
		tlsCfg.InsecureSkipVerify = true
	default:
		return nil, ErrBadAuthMode
	}

	bridge := &bridgeConn{tr: tr, retry: cfg.Retry}
	return &tlsEngine{
		conn:       tls.Client(bridge, tlsCfg),
		anchors:    cfg.Anchors,
		serverName: cfg.ServerName,
	}, nil
}

type tlsEngine struct {
	conn       *tls.Conn
	anchors    *cert.AnchorSet
	serverName string

	report   cert.Report
	reported bool
}

func (e *tlsEngine) Handshake() error {
	return e.conn.Handshake()
}

func (e *tlsEngine) Write(p []byte) (int, error) {
	return e.conn.Write(p)
}

func (e *tlsEngine) Read(p []byte) (int, error) {
	return e.conn.Read(p)
}

// VerifyReport evaluates the presented chain against the session
// anchors. The evaluation is uniform across auth modes: even when the
// handshake already enforced trust, the report restates the outcome.
func (e *tlsEngine) VerifyReport() cert.Report {
	if e.reported {
		return e.report
	}
	state := e.conn.ConnectionState()
	e.report = cert.Evaluate(state.PeerCertificates, e.anchors, e.serverName)
	e.reported = true
	return e.report
}

func (e *tlsEngine) Close() error {
	// CloseWrite flushes the close_notify alert without touching the
	// transport socket; the session closes that itself.
	return e.conn.CloseWrite()
}

// bridgeConn adapts a polling Transport to the blocking net.Conn
// surface crypto/tls expects. Reads absorb would-block by retrying
// under the engine retry policy; writes loop until every byte is
// accepted. Close is a no-op because the Session owns the transport
// lifetime.
type bridgeConn struct {
	tr    transport.Transport
	retry RetryPolicy
}

func (b *bridgeConn) Read(p []byte) (int, error) {
	rs := b.retry.newState()
	for {
		n, err := b.tr.Recv(p)
		if n > 0 || err == nil {
			return n, err
		}
		if transport.IsWouldBlock(err) {
			if berr := rs.absorb(); berr != nil {
				return 0, berr
			}
			continue
		}
		return 0, err
	}
}

func (b *bridgeConn) Write(p []byte) (int, error) {
	rs := b.retry.newState()
	offset := 0
	for offset < len(p) {
		n, err := b.tr.Send(p[offset:])
		if n > 0 {
			offset += n
		}
		if err == nil {
			continue
		}
		if transport.IsWouldBlock(err) {
			if berr := rs.absorb(); berr != nil {
				return offset, berr
			}
			continue
		}
		return offset, err
	}
	return offset, nil
}

func (b *bridgeConn) Close() error { return nil }

func (b *bridgeConn) LocalAddr() net.Addr {
	if a, ok := b.tr.(transport.Addressed); ok {
		return a.LocalAddr()
	}
	return nil
}

func (b *bridgeConn) RemoteAddr() net.Addr {
	if a, ok := b.tr.(transport.Addressed); ok {
		return a.RemoteAddr()
	}
	return nil
}

// Deadlines are managed by the transport's poll interval; the TLS
// layer never sets its own.
func (b *bridgeConn) SetDeadline(time.Time) error      { return nil }
func (b *bridgeConn) SetReadDeadline(time.Time) error  { return nil }
func (b *bridgeConn) SetWriteDeadline(time.Time) error { return nil }

var _ net.Conn = (*bridgeConn)(nil)
