package nfsn

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// AuthHeader is the request header carrying the token produced by Sign.
const AuthHeader = "X-NFSN-Authentication"

const (
	saltChars  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	saltLength = 16
)

// Sign computes the authentication token for one request.
//
// The token is "login;timestamp;salt;hash" where hash is the hex SHA-1 of
// "login;timestamp;salt;apiKey;path;sha1(body)".
// An absent body is signed as the empty string.
func Sign(login, apiKey, path, body string, timestamp uint32, salt string) string {
	ts := strconv.FormatUint(uint64(timestamp), 10)
	composite := strings.Join([]string{login, ts, salt, apiKey, path, hexSHA1(body)}, ";")
	return strings.Join([]string{login, ts, salt, hexSHA1(composite)}, ";")
}

func hexSHA1(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Signer produces a fresh token for every request.
// The zero value is not usable; construct it with NewSigner.
type Signer struct {
	creds Credentials
	now   func() time.Time
	rand  io.Reader
}

func NewSigner(creds Credentials) *Signer {
	return &Signer{
		creds: creds,
		now:   time.Now,
		rand:  rand.Reader,
	}
}

// Token signs path and body with a new salt and the current time.
func (s *Signer) Token(path, body string) (string, error) {
	salt, err := newSalt(s.rand)
	if err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}
	return Sign(s.creds.Login, s.creds.APIKey, path, body, uint32(s.now().Unix()), salt), nil
}

func newSalt(r io.Reader) (string, error) {
	max := big.NewInt(int64(len(saltChars)))
	b := make([]byte, saltLength)
	for i := range b {
		n, err := rand.Int(r, max)
		if err != nil {
			return "", err
		}
		b[i] = saltChars[n.Int64()]
	}
	return string(b), nil
}
