// Package access gates write operations behind an optional shared password
// sent in the x-access-password header.
package access

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HeaderName carries the shared password.
const HeaderName = "x-access-password"

// MetadataKey marks operations that require the password in huma operation metadata.
const MetadataKey = "accessPassword"

var ErrUnauthorized = errors.New("unauthorized: invalid password")

// Guard checks a supplied password against the configured secret. A Guard
// with no secret accepts everything.
type Guard struct {
	password []byte
	hash     []byte
}

// NewGuard creates a guard comparing against a plaintext password.
func NewGuard(password string) *Guard {
	return &Guard{password: []byte(password)}
}

// NewHashGuard creates a guard comparing against a bcrypt hash.
func NewHashGuard(hash string) (*Guard, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("access password hash: %w", err)
	}

	return &Guard{hash: []byte(hash)}, nil
}

// Enabled reports whether a password is configured.
func (g *Guard) Enabled() bool {
	return len(g.password) > 0 || len(g.hash) > 0
}

// Verify returns ErrUnauthorized unless supplied matches the configured secret exactly.
func (g *Guard) Verify(supplied string) error {
	switch {
	case len(g.hash) > 0:
		if bcrypt.CompareHashAndPassword(g.hash, []byte(supplied)) != nil {
			return ErrUnauthorized
		}
	case len(g.password) > 0:
		if subtle.ConstantTimeCompare(g.password, []byte(supplied)) != 1 {
			return ErrUnauthorized
		}
	}

	return nil
}
