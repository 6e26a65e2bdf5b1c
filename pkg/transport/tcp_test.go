package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// startEcholess starts a TCP listener that accepts one connection and
// hands it to the test without writing anything.
func startEcholess(t *testing.T) (net.Addr, <-chan net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	return ln.Addr(), accepted
}

func dialTestTransport(t *testing.T, addr net.Addr) *TCPTransport {
	t.Helper()

	tr := NewTCP(TCPConfig{PollInterval: 2 * time.Millisecond})
	tcpAddr := addr.(*net.TCPAddr)
	if err := tr.Connect(context.Background(), tcpAddr.IP.String(), tcpAddr.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestTCPRecvWouldBlock(t *testing.T) {
	addr, accepted := startEcholess(t)
	tr := dialTestTransport(t, addr)

	buf := make([]byte, 64)
	n, err := tr.Recv(buf)
	if !errors.Is(err, ErrWantRead) {
		t.Fatalf("Recv with no data: n=%d err=%v, want ErrWantRead", n, err)
	}
	if n != 0 {
		t.Errorf("Recv reported %d bytes with would-block", n)
	}

	// Peer writes; data must eventually arrive through retries.
	peer := <-accepted
	defer peer.Close()
	if _, err := peer.Write([]byte("ping")); err != nil {
		t.Fatalf("peer write failed: %v", err)
	}

	var got []byte
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 4 {
		if time.Now().After(deadline) {
			t.Fatalf("no data after retries, got %q", got)
		}
		n, err := tr.Recv(buf)
		if err != nil {
			if IsWouldBlock(err) {
				continue
			}
			t.Fatalf("Recv failed: %v", err)
		}
		got = append(got, buf[:n]...)
	}

	if !bytes.Equal(got, []byte("ping")) {
		t.Errorf("Recv accumulated %q, want %q", got, "ping")
	}
}

func TestTCPRecvPeerClose(t *testing.T) {
	addr, accepted := startEcholess(t)
	tr := dialTestTransport(t, addr)

	peer := <-accepted
	_ = peer.Close()

	buf := make([]byte, 16)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("clean close never observed")
		}
		_, err := tr.Recv(buf)
		if IsWouldBlock(err) {
			continue
		}
		if !errors.Is(err, io.EOF) {
			t.Fatalf("Recv after peer close: %v, want io.EOF", err)
		}
		return
	}
}

func TestTCPSend(t *testing.T) {
	addr, accepted := startEcholess(t)
	tr := dialTestTransport(t, addr)

	peer := <-accepted
	defer peer.Close()

	payload := []byte("GET / HTTP/1.1\nHost: example\n\n")
	sent := 0
	deadline := time.Now().Add(2 * time.Second)
	for sent < len(payload) {
		if time.Now().After(deadline) {
			t.Fatalf("send stalled at %d/%d", sent, len(payload))
		}
		n, err := tr.Send(payload[sent:])
		if err != nil {
			if IsWouldBlock(err) {
				continue
			}
			t.Fatalf("Send failed: %v", err)
		}
		sent += n
	}

	got := make([]byte, len(payload))
	if _, err := io.ReadFull(peer, got); err != nil {
		t.Fatalf("peer read failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("peer received %q, want %q", got, payload)
	}
}

func TestTCPConnectRefused(t *testing.T) {
	// Grab a port that is certainly closed.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	tr := NewTCP(TCPConfig{})
	err = tr.Connect(context.Background(), "127.0.0.1", port)
	if err == nil {
		t.Fatal("Connect to closed port succeeded")
	}
	if IsWouldBlock(err) {
		t.Errorf("connect failure classified as would-block: %v", err)
	}
}

func TestTCPLifecycleErrors(t *testing.T) {
	tr := NewTCP(TCPConfig{})

	if _, err := tr.Send([]byte("x")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send before connect: %v, want ErrNotConnected", err)
	}
	if _, err := tr.Recv(make([]byte, 1)); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Recv before connect: %v, want ErrNotConnected", err)
	}

	if err := tr.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := tr.Recv(make([]byte, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Recv after close: %v, want ErrClosed", err)
	}
}

func TestIsWouldBlock(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "want read", err: ErrWantRead, want: true},
		{name: "want write", err: ErrWantWrite, want: true},
		{name: "wrapped want read", err: errors.Join(ErrWantRead), want: true},
		{name: "nil", err: nil, want: false},
		{name: "eof", err: io.EOF, want: false},
		{name: "other", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWouldBlock(tt.err); got != tt.want {
				t.Errorf("IsWouldBlock(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
