package cert

import (
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
	"time"
)

// VerifyFlags is a bitmask of verification failure reasons.
// Zero means the chain is trusted and the hostname matches.
type VerifyFlags uint32

const (
	// FlagExpired indicates the peer certificate has expired.
	FlagExpired VerifyFlags = 1 << iota

	// FlagNotYetValid indicates the peer certificate is not yet valid.
	FlagNotYetValid

	// FlagUnknownIssuer indicates no chain to a trust anchor exists.
	FlagUnknownIssuer

	// FlagHostnameMismatch indicates the certificate does not cover
	// the expected peer identity.
	FlagHostnameMismatch

	// FlagBadChain indicates the chain is malformed or otherwise
	// unverifiable.
	FlagBadChain

	// FlagNoCertificate indicates the peer presented no certificate.
	FlagNoCertificate
)

// Trusted reports whether no failure reasons are set.
func (f VerifyFlags) Trusted() bool { return f == 0 }

// String returns a human-readable summary of the failure reasons.
func (f VerifyFlags) String() string {
	if f == 0 {
		return "trusted"
	}

	var reasons []string
	if f&FlagNoCertificate != 0 {
		reasons = append(reasons, "no peer certificate")
	}
	if f&FlagExpired != 0 {
		reasons = append(reasons, "certificate expired")
	}
	if f&FlagNotYetValid != 0 {
		reasons = append(reasons, "certificate not yet valid")
	}
	if f&FlagUnknownIssuer != 0 {
		reasons = append(reasons, "unknown issuer")
	}
	if f&FlagHostnameMismatch != 0 {
		reasons = append(reasons, "hostname mismatch")
	}
	if f&FlagBadChain != 0 {
		reasons = append(reasons, "invalid chain")
	}
	return strings.Join(reasons, ", ")
}

// Report is the outcome of a diagnostic trust evaluation: the failure
// bitmask plus the peer chain it was computed from.
type Report struct {
	Flags VerifyFlags
	Chain []*x509.Certificate
}

// Trusted reports whether the evaluation found no failures.
func (r Report) Trusted() bool { return r.Flags.Trusted() }

// Peer returns the peer's leaf certificate, or nil.
func (r Report) Peer() *x509.Certificate {
	if len(r.Chain) == 0 {
		return nil
	}
	return r.Chain[0]
}

// Evaluate computes a diagnostic verification report for a presented
// chain against a set of trust anchors and an expected peer identity.
//
// The report is for diagnostics only. The accept/reject decision is
// made inside the handshake by the configured authentication mode;
// relying on this report to gate an already-established connection
// would reintroduce verify-after-establish trust bugs.
func Evaluate(chain []*x509.Certificate, anchors *AnchorSet, hostname string) Report {
	report := Report{Chain: chain}

	if len(chain) == 0 {
		report.Flags |= FlagNoCertificate
		return report
	}
	leaf := chain[0]

	now := time.Now()
	if now.After(leaf.NotAfter) {
		report.Flags |= FlagExpired
	}
	if now.Before(leaf.NotBefore) {
		report.Flags |= FlagNotYetValid
	}

	intermediates := x509.NewCertPool()
	for _, c := range chain[1:] {
		intermediates.AddCert(c)
	}

	opts := x509.VerifyOptions{
		Roots:         anchors.Pool(),
		Intermediates: intermediates,
		CurrentTime:   now,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	if _, err := leaf.Verify(opts); err != nil {
		report.Flags |= classifyVerifyError(err)
	}

	if hostname != "" {
		if err := leaf.VerifyHostname(hostname); err != nil {
			report.Flags |= FlagHostnameMismatch
		}
	}

	return report
}

func classifyVerifyError(err error) VerifyFlags {
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return FlagUnknownIssuer
	}

	var invalid x509.CertificateInvalidError
	if errors.As(err, &invalid) {
		if invalid.Reason == x509.Expired {
			return FlagExpired
		}
		return FlagBadChain
	}

	return FlagBadChain
}

// Describe returns a short human-readable description of a
// certificate for diagnostics, one attribute per line.
func Describe(c *x509.Certificate) string {
	if c == nil {
		return "  (none)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  subject:   %s\n", c.Subject)
	fmt.Fprintf(&b, "  issuer:    %s\n", c.Issuer)
	fmt.Fprintf(&b, "  serial:    %s\n", c.SerialNumber)
	fmt.Fprintf(&b, "  not before: %s\n", c.NotBefore.Format(time.RFC3339))
	fmt.Fprintf(&b, "  not after:  %s", c.NotAfter.Format(time.RFC3339))
	if len(c.DNSNames) > 0 {
		fmt.Fprintf(&b, "\n  dns names:  %s", strings.Join(c.DNSNames, ", "))
	}
	return b.String()
}
