package goGrant

import "errors"

var (
	// ErrNotAuthorized is an exported constant or variable used by the token strategy.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrAssertionExpired is an exported constant or variable used by the token strategy.
	ErrAssertionExpired = errors.New("assertion expired")
	// ErrAssertionMalformed is an exported constant or variable used by the token strategy.
	ErrAssertionMalformed = errors.New("assertion malformed")
	// ErrAssertionMissingExpiry is an exported constant or variable used by the token strategy.
	ErrAssertionMissingExpiry = errors.New("assertion has no expiry claim")
	// ErrExchangeFailed is an exported constant or variable used by the token strategy.
	ErrExchangeFailed = errors.New("token exchange failed")
	// ErrStrategyNotReady is an exported constant or variable used by the token strategy.
	ErrStrategyNotReady = errors.New("strategy not initialized")
)
