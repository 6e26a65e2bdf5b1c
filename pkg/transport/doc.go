// Package transport provides the non-blocking byte transport the
// session driver runs over.
//
// A Transport never stalls the calling goroutine: when no data or
// capacity is available it returns a would-block sentinel instead of
// waiting. Partial transfers are expected and are reported with the
// exact byte count; hiding them is a caller concern, not a transport
// concern.
//
// # Retry contract
//
// Every Send/Recv result falls into exactly one of three classes:
//
//   - progress: n bytes transferred, nil error (n may be less than
//     requested)
//   - would-block: ErrWantRead or ErrWantWrite; retry later, never an
//     error
//   - fatal: any other error; never retried. A clean peer close on
//     Recv is io.EOF, which is terminal but not fatal.
//
// TCPTransport adapts a TCP connection to this contract using short
// poll deadlines, mapping deadline timeouts to the would-block
// sentinels.
package transport
