package nfsn

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthentication matches a RequestError for which the API rejected the signed token.
//
//	if errors.Is(err, nfsn.ErrAuthentication) { ... }
var ErrAuthentication = errors.New("nfsn: authentication failed")

// RequestError is returned for every failed API request:
// transport failures, TLS rejections and non-2xx responses.
type RequestError struct {
	Method string
	Path   string
	// StatusCode is zero when no response was received.
	StatusCode int
	// Message is the "error" field of the API's error body, if any.
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("nfsn: %s %s failed: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("nfsn: %s %s failed: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("nfsn: %s %s failed: %s", e.Method, e.Path, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool {
	return target == ErrAuthentication &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// CertificateMismatchError is returned by the TLS handshake when the server
// presents an untrusted certificate that differs from the pinned one.
type CertificateMismatchError struct {
	Pinned    []byte
	Presented []byte
}

func (e *CertificateMismatchError) Error() string {
	return fmt.Sprintf("certificate fingerprint %x does not match pinned fingerprint %x", e.Presented, e.Pinned)
}
