package nfsn

import (
	"bytes"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FingerprintStore persists the pinned certificate fingerprint.
// Load returns an error if nothing has been pinned yet.
type FingerprintStore interface {
	Load() ([]byte, error)
	Save([]byte) error
}

// FileStore keeps the fingerprint as a raw blob in a file.
type FileStore string

// DefaultPinFile returns the user-scoped location of the fingerprint file.
func DefaultPinFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error locating user config dir: %w", err)
	}
	return filepath.Join(dir, "nfsn", "NFSNhash"), nil
}

func (f FileStore) Load() ([]byte, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("fingerprint file %q is empty", string(f))
	}
	return b, nil
}

func (f FileStore) Save(fingerprint []byte) error {
	if err := os.MkdirAll(filepath.Dir(string(f)), 0700); err != nil {
		return fmt.Errorf("error creating fingerprint directory: %w", err)
	}
	return os.WriteFile(string(f), fingerprint, 0600)
}

// Pinner implements trust-on-first-use certificate pinning.
//
// Certificates that validate against Roots (or the system pool when Roots is nil)
// are always accepted. Otherwise the first certificate seen is pinned by its
// SHA-256 fingerprint, and from then on only that certificate is accepted.
//
// This is a deliberate weakening of TLS validation: whoever answers the first
// connection becomes trusted. It exists for API endpoints serving a
// self-signed certificate and should not be used for anything else.
type Pinner struct {
	Store  FingerprintStore
	Roots  *x509.CertPool
	Logger logrus.FieldLogger
}

// TLSConfig returns a client configuration enforcing the pinning policy.
// Go's built-in verification is disabled and replaced by VerifyConnection.
func (p *Pinner) TLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true,
		VerifyConnection:   p.VerifyConnection,
	}
}

// VerifyConnection applies the pinning policy to a completed handshake.
func (p *Pinner) VerifyConnection(cs tls.ConnectionState) error {
	if len(cs.PeerCertificates) == 0 {
		return errors.New("server presented no certificates")
	}
	leaf := cs.PeerCertificates[0]
	if p.verifyChain(cs) == nil {
		return nil
	}

	logger := p.Logger
	if logger == nil {
		logger = discard
	}
	presented := Fingerprint(leaf)
	pinned, err := p.Store.Load()
	if err != nil {
		logger.WithField("fingerprint", fmt.Sprintf("%x", presented)).Info("pinning untrusted server certificate")
		if err := p.Store.Save(presented); err != nil {
			return fmt.Errorf("error saving certificate fingerprint: %w", err)
		}
		return nil
	}
	if !bytes.Equal(pinned, presented) {
		return &CertificateMismatchError{Pinned: pinned, Presented: presented}
	}
	return nil
}

func (p *Pinner) verifyChain(cs tls.ConnectionState) error {
	opts := x509.VerifyOptions{
		Roots:         p.Roots,
		DNSName:       cs.ServerName,
		Intermediates: x509.NewCertPool(),
	}
	for _, cert := range cs.PeerCertificates[1:] {
		opts.Intermediates.AddCert(cert)
	}
	_, err := cs.PeerCertificates[0].Verify(opts)
	return err
}

// Fingerprint is the SHA-256 digest of the certificate's DER encoding.
func Fingerprint(cert *x509.Certificate) []byte {
	sum := sha256.Sum256(cert.Raw)
	return sum[:]
}
