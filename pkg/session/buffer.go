package session

import "fmt"

// Buffer is a fixed-capacity transfer buffer with a fill cursor. The
// final byte is never filled, so the accumulated region is always a
// bounded fragment the scanner can treat as text without a separate
// length check.
//
// A Buffer belongs to exactly one direction of one session; it is not
// safe for concurrent use.
type Buffer struct {
	buf  []byte
	fill int
}

// minBufferSize is the smallest usable capacity: one data byte plus
// the reserved terminator byte.
const minBufferSize = 2

// NewBuffer creates a Buffer with the given capacity. Capacities
// below the minimum are raised to it.
func NewBuffer(capacity int) *Buffer {
	if capacity < minBufferSize {
		capacity = minBufferSize
	}
	return &Buffer{buf: make([]byte, capacity)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.buf) }

// Fill returns the fill cursor: the number of accumulated bytes.
func (b *Buffer) Fill() int { return b.fill }

// Remaining returns how many more bytes may be appended.
func (b *Buffer) Remaining() int { return len(b.buf) - 1 - b.fill }

// Full reports whether the fill cursor has reached capacity-1.
func (b *Buffer) Full() bool { return b.Remaining() == 0 }

// Window returns the writable region between the fill cursor and the
// reserved terminator byte. Callers fill a prefix of it and then call
// Advance.
func (b *Buffer) Window() []byte { return b.buf[b.fill : len(b.buf)-1] }

// Advance moves the fill cursor forward by n bytes just written into
// Window. The fill cursor never exceeds capacity-1.
func (b *Buffer) Advance(n int) error {
	if n < 0 || n > b.Remaining() {
		return fmt.Errorf("session: buffer advance %d outside remaining %d", n, b.Remaining())
	}
	b.fill += n
	return nil
}

// Bytes returns the accumulated region.
func (b *Buffer) Bytes() []byte { return b.buf[:b.fill] }
