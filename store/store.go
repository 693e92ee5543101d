package store

import "time"

// Token defines a public type used by goGrant APIs.
//
// Token instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Token struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines a public type used by goGrant APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store interface {
	// Get returns the cached token, or nil when no token is cached.
	// A present-but-expired token is returned as-is; expiry policy
	// belongs to the strategy.
	Get() *Token

	// Set replaces the cached token. A nil token clears the state;
	// clearing an already-empty store is a no-op.
	Set(*Token)
}
