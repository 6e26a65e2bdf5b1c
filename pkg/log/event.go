package log

import "time"

// Event is one protocol capture record. CBOR encoding uses integer
// keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Stage of the driver when the event was captured.
	Stage Stage `cbor:"3,keyasint"`

	// RemoteAddr is the peer address, when known.
	RemoteAddr string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (exactly one is set).
	State    *StateChangeEvent `cbor:"5,keyasint,omitempty"`
	Transfer *TransferEvent    `cbor:"6,keyasint,omitempty"`
	Scan     *ScanEvent        `cbor:"7,keyasint,omitempty"`
	Error    *ErrorEvent       `cbor:"8,keyasint,omitempty"`
}

// Stage identifies the driver stage an event belongs to.
type Stage uint8

const (
	// StageConfig covers randomness seeding, anchor loading and
	// protocol parameter setup.
	StageConfig Stage = iota
	// StageConnect covers transport binding and connection.
	StageConnect
	// StageHandshake covers the handshake retry loop.
	StageHandshake
	// StageWrite covers the request flush loop.
	StageWrite
	// StageRead covers the response accumulation loop.
	StageRead
	// StageClose covers session teardown.
	StageClose
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageConfig:
		return "config"
	case StageConnect:
		return "connect"
	case StageHandshake:
		return "handshake"
	case StageWrite:
		return "write"
	case StageRead:
		return "read"
	case StageClose:
		return "close"
	default:
		return "unknown"
	}
}

// Direction indicates transfer direction.
type Direction uint8

const (
	// DirectionIn is peer-to-session.
	DirectionIn Direction = 0
	// DirectionOut is session-to-peer.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionOut {
		return "out"
	}
	return "in"
}

// StateChangeEvent records a session state transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// TransferEvent records one completed transfer loop.
type TransferEvent struct {
	Direction Direction `cbor:"1,keyasint"`
	// Bytes actually transferred.
	Bytes int `cbor:"2,keyasint"`
	// Retries is the number of would-block results absorbed.
	Retries int `cbor:"3,keyasint,omitempty"`
}

// ScanEvent records a marker being found in the accumulated response.
type ScanEvent struct {
	Marker string `cbor:"1,keyasint"`
	// Offset is the marker's byte index in the accumulated buffer.
	Offset int `cbor:"2,keyasint"`
}

// ErrorEvent records a fatal failure.
type ErrorEvent struct {
	Message string `cbor:"1,keyasint"`
}
