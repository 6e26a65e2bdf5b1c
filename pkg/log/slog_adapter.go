package log

import (
	"context"
	"log/slog"
)

// SlogAdapter mirrors capture events into an slog.Logger. Useful in
// development to see protocol events on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("stage", event.Stage.String()),
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote_addr", event.RemoteAddr))
	}

	msg := "session event"
	switch {
	case event.State != nil:
		msg = "state change"
		attrs = append(attrs,
			slog.String("old_state", event.State.OldState),
			slog.String("new_state", event.State.NewState),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
	case event.Transfer != nil:
		msg = "transfer"
		attrs = append(attrs,
			slog.String("direction", event.Transfer.Direction.String()),
			slog.Int("bytes", event.Transfer.Bytes),
			slog.Int("retries", event.Transfer.Retries),
		)
	case event.Scan != nil:
		msg = "marker found"
		attrs = append(attrs,
			slog.String("marker", event.Scan.Marker),
			slog.Int("offset", event.Scan.Offset),
		)
	case event.Error != nil:
		msg = "session error"
		attrs = append(attrs, slog.String("err", event.Error.Message))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
