package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAssertionMalformed is an exported constant or variable used by the token strategy.
var ErrAssertionMalformed = errors.New("assertion malformed")

// ErrAssertionMissingExpiry is an exported constant or variable used by the token strategy.
var ErrAssertionMissingExpiry = errors.New("assertion has no expiry claim")

// Assertion defines a public type used by goGrant APIs.
//
// Assertion instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Assertion struct {
	raw       string
	expiresAt time.Time
	hasExpiry bool
	issuer    string
	subject   string
}

// ParseAssertion describes the parseassertion operation and its observable behavior.
//
// ParseAssertion may return an error when input validation, dependency calls, or security checks fail.
// ParseAssertion does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ParseAssertion(raw string) (*Assertion, error) {
	if raw == "" {
		return nil, ErrAssertionMalformed
	}

	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil, ErrAssertionMalformed
	}

	a := &Assertion{
		raw:     raw,
		issuer:  claims.Issuer,
		subject: claims.Subject,
	}
	if claims.ExpiresAt != nil {
		a.expiresAt = claims.ExpiresAt.Time
		a.hasExpiry = true
	}

	return a, nil
}

// Raw describes the raw operation and its observable behavior.
//
// Raw may return an error when input validation, dependency calls, or security checks fail.
// Raw does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Assertion) Raw() string {
	if a == nil {
		return ""
	}
	return a.raw
}

// ExpiresAt describes the expiresat operation and its observable behavior.
//
// ExpiresAt may return an error when input validation, dependency calls, or security checks fail.
// ExpiresAt does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Assertion) ExpiresAt() (time.Time, bool) {
	if a == nil {
		return time.Time{}, false
	}
	return a.expiresAt, a.hasExpiry
}

// Expired reports whether the assertion's embedded expiration is at or
// before now. An assertion without an expiry claim never expires.
// The comparison is strict: exp == now counts as expired.
func (a *Assertion) Expired(now time.Time) bool {
	if a == nil {
		return true
	}
	if !a.hasExpiry {
		return false
	}
	return !a.expiresAt.After(now)
}

// Issuer describes the issuer operation and its observable behavior.
//
// Issuer may return an error when input validation, dependency calls, or security checks fail.
// Issuer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Assertion) Issuer() string {
	if a == nil {
		return ""
	}
	return a.issuer
}

// Subject describes the subject operation and its observable behavior.
//
// Subject may return an error when input validation, dependency calls, or security checks fail.
// Subject does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Assertion) Subject() string {
	if a == nil {
		return ""
	}
	return a.subject
}
