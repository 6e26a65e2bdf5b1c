// Package cert provides trust anchor loading and diagnostic
// verification for the session driver.
//
// An AnchorSet is loaded once per session from a PEM byte source and
// is read-only afterwards. Evaluation (verify.go) reports a bitmask
// of failure reasons; it never gates connection establishment, which
// is enforced inside the handshake by the session's authentication
// mode.
package cert

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Anchor loading errors.
var (
	ErrNoAnchors  = errors.New("cert: no certificates in anchor source")
	ErrInvalidPEM = errors.New("cert: invalid PEM data")
)

// AnchorSet is an ordered, read-only set of trust anchor
// certificates.
type AnchorSet struct {
	certs []*x509.Certificate
}

// LoadAnchors parses one or more concatenated PEM certificate blocks.
// Non-certificate blocks are skipped; an unparsable certificate block
// is an error. At least one anchor must be present.
func LoadAnchors(pemData []byte) (*AnchorSet, error) {
	var certs []*x509.Certificate

	rest := pemData
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		c, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("cert: parse anchor %d: %w", len(certs), err)
		}
		certs = append(certs, c)
	}

	if len(certs) == 0 {
		return nil, ErrNoAnchors
	}
	return &AnchorSet{certs: certs}, nil
}

// LoadAnchorsFile reads a PEM file of concatenated anchors.
func LoadAnchorsFile(path string) (*AnchorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cert: read anchors: %w", err)
	}
	return LoadAnchors(data)
}

// Len returns the number of anchors.
func (s *AnchorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.certs)
}

// Certificates returns the anchors in load order.
func (s *AnchorSet) Certificates() []*x509.Certificate {
	if s == nil {
		return nil
	}
	out := make([]*x509.Certificate, len(s.certs))
	copy(out, s.certs)
	return out
}

// Pool returns the anchors as an x509.CertPool for chain building.
func (s *AnchorSet) Pool() *x509.CertPool {
	pool := x509.NewCertPool()
	if s == nil {
		return pool
	}
	for _, c := range s.certs {
		pool.AddCert(c)
	}
	return pool
}
