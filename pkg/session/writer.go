package session

import (
	"fmt"
	"time"

	"github.com/secfetch/secfetch-go/pkg/log"
	"github.com/secfetch/secfetch-go/pkg/transport"
)

// renderRequest formats the fixed-shape request line for path and
// host. The rendered request never exceeds max-1 bytes; an oversized
// render is truncated, not an error.
func renderRequest(path, host string, max int) []byte {
	req := fmt.Sprintf("GET %s HTTP/1.1\nHost: %s\n\n", path, host)
	if max > 0 && len(req) > max-1 {
		req = req[:max-1]
	}
	return []byte(req)
}

// flushRequest writes the request in full: partial progress advances
// the offset so no byte is ever sent twice, would-block retries from
// the same offset, any other error is fatal. Returns once the final
// byte is accepted by the engine.
func (s *Session) flushRequest(request []byte) error {
	rs := s.cfg.Retry.newState()
	offset := 0
	retries := 0

	for offset < len(request) {
		n, err := s.engine.Write(request[offset:])
		if n > 0 {
			offset += n
		}

		switch {
		case err == nil:
			if n == 0 {
				// Zero-byte progress counts against the budget.
				if berr := rs.absorb(); berr != nil {
					return berr
				}
			}
		case transport.IsWouldBlock(err):
			retries++
			if berr := rs.absorb(); berr != nil {
				return berr
			}
		default:
			return err
		}
	}

	s.capture.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  s.id,
		Stage:      log.StageWrite,
		RemoteAddr: s.remoteAddr(),
		Transfer: &log.TransferEvent{
			Direction: log.DirectionOut,
			Bytes:     offset,
			Retries:   retries,
		},
	})
	s.logger.Debug("request flushed",
		"session_id", s.id,
		"bytes", offset,
		"retries", retries,
	)
	return nil
}
