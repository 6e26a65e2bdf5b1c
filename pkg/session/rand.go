package session

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// newPersonalizedRand builds the session randomness source: a
// ChaCha20 keystream keyed by system entropy domain-separated with
// the personalization string. Each session seeds its own source.
func newPersonalizedRand(personalization string) (io.Reader, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("session: seed randomness: %w", err)
	}

	h := sha256.New()
	h.Write(seed[:])
	h.Write([]byte(personalization))
	key := h.Sum(nil)

	cipher, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("session: init randomness: %w", err)
	}
	return &keystreamReader{cipher: cipher}, nil
}

// keystreamReader yields the raw ChaCha20 keystream.
type keystreamReader struct {
	cipher *chacha20.Cipher
}

func (r *keystreamReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
