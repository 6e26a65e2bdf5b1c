package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/secfetch/secfetch-go/pkg/cert"
	"github.com/secfetch/secfetch-go/pkg/log"
	"github.com/secfetch/secfetch-go/pkg/transport"
)

// Session states.
type State int

const (
	// StateUnconfigured is the initial state.
	StateUnconfigured State = iota

	// StateConfigured means randomness, anchors and protocol
	// parameters are in place; no transport activity yet.
	StateConfigured

	// StateConnecting means the transport-level connect is in
	// progress or done.
	StateConnecting

	// StateHandshaking means the handshake retry loop is running.
	StateHandshaking

	// StateEstablished is the only state permitting request write
	// and response read.
	StateEstablished

	// StateFailed is terminal; no further operations are attempted.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "UNCONFIGURED"
	case StateConfigured:
		return "CONFIGURED"
	case StateConnecting:
		return "CONNECTING"
	case StateHandshaking:
		return "HANDSHAKING"
	case StateEstablished:
		return "ESTABLISHED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// AuthMode selects how certificate verification failures are treated
// during the handshake. The zero value is AuthModeRequired.
type AuthMode int

const (
	// AuthModeRequired rejects untrusted peers inside the handshake,
	// before the session can become established.
	AuthModeRequired AuthMode = iota

	// AuthModeOptional completes the handshake regardless and leaves
	// the verification outcome to the diagnostic report.
	AuthModeOptional

	// AuthModeNone skips verification entirely; the diagnostic
	// report is still computed.
	AuthModeNone
)

// String returns the mode name.
func (m AuthMode) String() string {
	switch m {
	case AuthModeRequired:
		return "required"
	case AuthModeOptional:
		return "optional"
	case AuthModeNone:
		return "none"
	default:
		return "unknown"
	}
}

// Session defaults.
const (
	// DefaultPort is the default peer port.
	DefaultPort = 443

	// DefaultBufferSize is the transfer buffer capacity.
	DefaultBufferSize = 600

	// DefaultPersonalization is the randomness personalization
	// string.
	DefaultPersonalization = "secfetch tls client"
)

// DefaultMarkers returns the default response success markers.
func DefaultMarkers() []string {
	return []string{"200 OK", "Hello world!"}
}

// Session errors.
var (
	ErrNoHost       = errors.New("session: host is required")
	ErrNoTransport  = errors.New("session: transport is required")
	ErrNoMarkers    = errors.New("session: at least one marker is required")
	ErrAlreadyUsed  = errors.New("session: already started")
	ErrNeedAnchors  = errors.New("session: auth mode required needs trust anchors")
	ErrBadAuthMode  = errors.New("session: unknown auth mode")
	ErrNoTLSVersion = errors.New("session: no acceptable protocol version")
)

// Config configures a Session.
type Config struct {
	// Host is the peer hostname; it is also the identity bound into
	// certificate verification.
	Host string

	// Port is the peer port (default: 443).
	Port int

	// AuthMode selects certificate verification behavior
	// (default: required).
	AuthMode AuthMode

	// AnchorPEM is one or more concatenated PEM trust anchors,
	// loaded once at session start. Required with AuthModeRequired.
	AnchorPEM []byte

	// Markers are the response substrings that together constitute
	// success (default: DefaultMarkers).
	Markers []string

	// BufferSize is the transfer buffer capacity
	// (default: DefaultBufferSize).
	BufferSize int

	// Personalization domain-separates the randomness source
	// (default: DefaultPersonalization).
	Personalization string

	// Retry bounds every busy-poll loop (default:
	// DefaultRetryPolicy).
	Retry RetryPolicy

	// Engine builds the record-layer engine (default: NewTLSEngine).
	Engine EngineFactory

	// Capture receives protocol events; nil disables capture.
	Capture log.Logger

	// Logger is the operational logger; nil uses slog.Default().
	Logger *slog.Logger
}

// Session drives one request/response exchange over one encrypted
// connection. It owns its Transport for its whole lifetime, performs
// at most one handshake, and is torn down when Start returns.
//
// A Session is single-threaded: no method is safe to call
// concurrently, and once Start begins it runs to completion.
type Session struct {
	id  string
	cfg Config
	tr  transport.Transport

	engine  Engine
	state   State
	started bool

	buf     *Buffer
	markers []string
	found   map[string]bool
	verify  cert.Report

	peerClosed bool
	bufferFull bool

	capture log.Logger
	logger  *slog.Logger

	closeOnce sync.Once
}

// New creates a Session bound to tr. The transport must be
// unconnected; the session connects it during Start.
func New(cfg Config, tr transport.Transport) (*Session, error) {
	if cfg.Host == "" {
		return nil, ErrNoHost
	}
	if tr == nil {
		return nil, ErrNoTransport
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if len(cfg.Markers) == 0 {
		cfg.Markers = DefaultMarkers()
	}
	if cfg.Personalization == "" {
		cfg.Personalization = DefaultPersonalization
	}
	cfg.Retry = cfg.Retry.normalize()
	if cfg.Engine == nil {
		cfg.Engine = NewTLSEngine
	}

	capture := cfg.Capture
	if capture == nil {
		capture = log.NoopLogger{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		id:      uuid.New().String(),
		cfg:     cfg,
		tr:      tr,
		state:   StateUnconfigured,
		markers: cfg.Markers,
		capture: capture,
		logger:  logger,
	}, nil
}

// ID returns the session UUID.
func (s *Session) ID() string { return s.id }

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Start runs the whole driver loop for one request: configure,
// connect, handshake, flush the request for path, record the trust
// evaluation, and accumulate the response until every marker is
// found, the peer closes, or the buffer fills.
//
// The context bounds the transport connect only; once the session is
// past connecting there is no cancellation, the retry policy is the
// sole bound. Start returns either a terminal Result or a
// *FatalError; there is no partial-success return. The transport is
// closed before Start returns, on every path.
func (s *Session) Start(ctx context.Context, path string) (*Result, error) {
	if s.started {
		return nil, ErrAlreadyUsed
	}
	s.started = true
	defer s.teardown()

	if err := s.configure(); err != nil {
		return nil, s.fail(log.StageConfig, err)
	}
	if err := s.connect(ctx); err != nil {
		return nil, s.fail(log.StageConnect, err)
	}
	if err := s.handshake(); err != nil {
		return nil, s.fail(log.StageHandshake, err)
	}

	s.verify = s.engine.VerifyReport()
	s.logger.Debug("peer verification recorded",
		"session_id", s.id,
		"trusted", s.verify.Trusted(),
		"flags", s.verify.Flags.String(),
	)

	request := renderRequest(path, s.cfg.Host, s.cfg.BufferSize)
	if err := s.flushRequest(request); err != nil {
		return nil, s.fail(log.StageWrite, err)
	}
	if err := s.readUntilMarkers(); err != nil {
		return nil, s.fail(log.StageRead, err)
	}

	return s.result(), nil
}

// configure performs the pre-transport setup: randomness seeding,
// anchor loading, protocol parameter selection and engine
// construction. Failures here are fatal with no transport activity.
func (s *Session) configure() error {
	rng, err := newPersonalizedRand(s.cfg.Personalization)
	if err != nil {
		return err
	}

	var anchors *cert.AnchorSet
	if len(s.cfg.AnchorPEM) > 0 {
		anchors, err = cert.LoadAnchors(s.cfg.AnchorPEM)
		if err != nil {
			return err
		}
	}
	if s.cfg.AuthMode == AuthModeRequired && anchors.Len() == 0 {
		return ErrNeedAnchors
	}

	engine, err := s.cfg.Engine(s.tr, EngineConfig{
		ServerName: s.cfg.Host,
		Anchors:    anchors,
		AuthMode:   s.cfg.AuthMode,
		Rand:       rng,
		Retry:      s.cfg.Retry,
	})
	if err != nil {
		return err
	}
	s.engine = engine

	s.buf = NewBuffer(s.cfg.BufferSize)
	s.found = make(map[string]bool, len(s.markers))
	for _, m := range s.markers {
		s.found[m] = false
	}

	s.setState(StateConfigured, "")
	return nil
}

func (s *Session) connect(ctx context.Context) error {
	s.setState(StateConnecting, "")
	if err := s.tr.Connect(ctx, s.cfg.Host, s.cfg.Port); err != nil {
		return err
	}
	s.logger.Info("connected", "session_id", s.id, "host", s.cfg.Host, "port", s.cfg.Port)
	return nil
}

// handshake busy-polls the engine's handshake-advance operation:
// would-block results are retried immediately with no delay, bounded
// only by the retry budget; any other failure is fatal.
func (s *Session) handshake() error {
	s.setState(StateHandshaking, "")

	rs := s.cfg.Retry.newState()
	for {
		err := s.engine.Handshake()
		if err == nil {
			s.setState(StateEstablished, "")
			return nil
		}
		if transport.IsWouldBlock(err) {
			if berr := rs.absorb(); berr != nil {
				return berr
			}
			continue
		}
		return err
	}
}

// fail moves the session to the terminal FAILED state and wraps the
// reason with its stage.
func (s *Session) fail(stage log.Stage, err error) error {
	old := s.state
	s.state = StateFailed
	s.capture.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  s.id,
		Stage:      stage,
		RemoteAddr: s.remoteAddr(),
		State: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: StateFailed.String(),
			Reason:   err.Error(),
		},
	})
	s.capture.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Stage:     stage,
		Error:     &log.ErrorEvent{Message: err.Error()},
	})
	s.logger.Error("session failed",
		"session_id", s.id,
		"stage", stage.String(),
		"err", err,
	)
	return &FatalError{Stage: stage, Err: err}
}

// teardown closes the engine and the transport. The transport socket
// is closed exactly once regardless of how many paths reach here.
func (s *Session) teardown() {
	s.closeOnce.Do(func() {
		if s.engine != nil {
			_ = s.engine.Close()
		}
		_ = s.tr.Close()
		s.capture.Log(log.Event{
			Timestamp:  time.Now(),
			SessionID:  s.id,
			Stage:      log.StageClose,
			RemoteAddr: s.remoteAddr(),
		})
	})
}

func (s *Session) setState(next State, reason string) {
	old := s.state
	s.state = next
	s.capture.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  s.id,
		Stage:      stageFor(next),
		RemoteAddr: s.remoteAddr(),
		State: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func stageFor(state State) log.Stage {
	switch state {
	case StateConnecting:
		return log.StageConnect
	case StateHandshaking, StateEstablished:
		return log.StageHandshake
	default:
		return log.StageConfig
	}
}

func (s *Session) remoteAddr() string {
	if a, ok := s.tr.(transport.Addressed); ok {
		if addr := a.RemoteAddr(); addr != nil {
			return addr.String()
		}
	}
	return ""
}

func (s *Session) result() *Result {
	markers := make(map[string]bool, len(s.found))
	for m, ok := range s.found {
		markers[m] = ok
	}
	response := make([]byte, s.buf.Fill())
	copy(response, s.buf.Bytes())

	return &Result{
		SessionID:  s.id,
		Markers:    markers,
		Response:   response,
		Verify:     s.verify,
		PeerClosed: s.peerClosed,
		BufferFull: s.bufferFull,
	}
}
