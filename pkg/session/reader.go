package session

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/secfetch/secfetch-go/pkg/log"
	"github.com/secfetch/secfetch-go/pkg/transport"
)

// readUntilMarkers accumulates response bytes into the transfer
// buffer until every marker is found, the peer closes cleanly, or
// the buffer fills. Each chunk of progress triggers a rescan of the
// whole accumulated buffer, so markers that straddle read boundaries
// are still detected.
func (s *Session) readUntilMarkers() error {
	rs := s.cfg.Retry.newState()
	retries := 0

	for {
		if s.allFound() {
			return nil
		}
		if s.buf.Full() {
			s.bufferFull = true
			s.logger.Warn("transfer buffer full before all markers found",
				"session_id", s.id,
				"bytes", s.buf.Fill(),
			)
			return nil
		}

		n, err := s.engine.Read(s.buf.Window())
		if n > 0 {
			if aerr := s.buf.Advance(n); aerr != nil {
				return aerr
			}
			s.scan()
			s.capture.Log(log.Event{
				Timestamp:  time.Now(),
				SessionID:  s.id,
				Stage:      log.StageRead,
				RemoteAddr: s.remoteAddr(),
				Transfer: &log.TransferEvent{
					Direction: log.DirectionIn,
					Bytes:     n,
					Retries:   retries,
				},
			})
		}

		switch {
		case err == nil:
			if n == 0 {
				// Zero-byte progress counts against the budget.
				if berr := rs.absorb(); berr != nil {
					return berr
				}
			}
		case errors.Is(err, io.EOF):
			s.peerClosed = true
			s.logger.Debug("peer closed connection",
				"session_id", s.id,
				"bytes", s.buf.Fill(),
			)
			return nil
		case transport.IsWouldBlock(err):
			retries++
			if berr := rs.absorb(); berr != nil {
				return berr
			}
		default:
			return err
		}
	}
}

// scan re-checks the entire accumulated buffer against every marker.
// Found markers stay found; a marker is reported at most once.
func (s *Session) scan() {
	data := s.buf.Bytes()
	for _, m := range s.markers {
		if s.found[m] {
			continue
		}
		idx := bytes.Index(data, []byte(m))
		if idx < 0 {
			continue
		}
		s.found[m] = true
		s.capture.Log(log.Event{
			Timestamp:  time.Now(),
			SessionID:  s.id,
			Stage:      log.StageRead,
			RemoteAddr: s.remoteAddr(),
			Scan: &log.ScanEvent{
				Marker: m,
				Offset: idx,
			},
		})
		s.logger.Info("marker found",
			"session_id", s.id,
			"marker", m,
			"offset", idx,
		)
	}
}

func (s *Session) allFound() bool {
	for _, m := range s.markers {
		if !s.found[m] {
			return false
		}
	}
	return true
}
