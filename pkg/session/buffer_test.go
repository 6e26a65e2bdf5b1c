package session

import (
	"bytes"
	"testing"
)

func TestBufferWindowAndAdvance(t *testing.T) {
	b := NewBuffer(10)

	if got := b.Cap(); got != 10 {
		t.Fatalf("Cap() = %d, want 10", got)
	}
	if got := b.Remaining(); got != 9 {
		t.Fatalf("Remaining() = %d, want 9", got)
	}
	if got := len(b.Window()); got != 9 {
		t.Fatalf("len(Window()) = %d, want 9", got)
	}

	copy(b.Window(), "hello")
	if err := b.Advance(5); err != nil {
		t.Fatalf("Advance(5): %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte("hello")) {
		t.Fatalf("Bytes() = %q, want %q", b.Bytes(), "hello")
	}
	if got := len(b.Window()); got != 4 {
		t.Fatalf("len(Window()) after advance = %d, want 4", got)
	}

	copy(b.Window(), "wrld")
	if err := b.Advance(4); err != nil {
		t.Fatalf("Advance(4): %v", err)
	}
	if !b.Full() {
		t.Fatal("buffer should be full at capacity-1")
	}
	if got := b.Fill(); got != 9 {
		t.Fatalf("Fill() = %d, want 9", got)
	}
}

func TestBufferReservedByteNeverFilled(t *testing.T) {
	b := NewBuffer(4)

	// Only capacity-1 bytes may ever accumulate.
	if err := b.Advance(4); err == nil {
		t.Fatal("Advance past remaining should fail")
	}
	if err := b.Advance(3); err != nil {
		t.Fatalf("Advance(3): %v", err)
	}
	if err := b.Advance(1); err == nil {
		t.Fatal("Advance on full buffer should fail")
	}
	if err := b.Advance(-1); err == nil {
		t.Fatal("negative Advance should fail")
	}
}

func TestBufferMinimumCapacity(t *testing.T) {
	for _, capacity := range []int{-1, 0, 1} {
		b := NewBuffer(capacity)
		if got := b.Cap(); got != minBufferSize {
			t.Errorf("NewBuffer(%d).Cap() = %d, want %d", capacity, got, minBufferSize)
		}
		if got := b.Remaining(); got != 1 {
			t.Errorf("NewBuffer(%d).Remaining() = %d, want 1", capacity, got)
		}
	}
}
