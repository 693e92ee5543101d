package goGrant

import (
	"context"
	"time"

	"github.com/MrEthical07/goGrant/store"
)

// CachedToken is the currently usable bearer token together with its
// expiration instant. Absent (no cached token) is a valid auth state,
// distinct from present-but-expired.
type CachedToken = store.Token

// Store is the auth-state persistence contract the strategy is constructed
// with. See [store.Store]; implementations live in the store package.
type Store = store.Store

// IssuedToken is the result of a successful exchange: the new token value,
// the instant the authorization server created it, and its time-to-live.
// The strategy derives the cached expiration as CreatedAt + TTL.
type IssuedToken struct {
	Value     string
	CreatedAt time.Time
	TTL       time.Duration
}

// Exchanger performs the network exchange trading the signed assertion for a
// freshly issued access token. The exchange's deadline and retry policy
// belong to the implementation, not to the strategy.
//
// Exchange must invoke complete exactly once per call, asynchronously, on
// any goroutine. The strategy guarantees at most one Exchange call is in
// flight per Strategy instance.
type Exchanger interface {
	Exchange(ctx context.Context, assertion string, complete func(IssuedToken, error))
}

// ExchangeFunc adapts a function to the [Exchanger] interface.
type ExchangeFunc func(ctx context.Context, assertion string, complete func(IssuedToken, error))

// Exchange describes the exchange operation and its observable behavior.
//
// Exchange may return an error when input validation, dependency calls, or security checks fail.
// Exchange does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f ExchangeFunc) Exchange(ctx context.Context, assertion string, complete func(IssuedToken, error)) {
	f(ctx, assertion, complete)
}

// TokenCallback receives the outcome of an access-token request: the token
// value with ok == true, or the absence signal with ok == false. It is
// invoked exactly once per RequestAccessToken call.
type TokenCallback func(token string, ok bool)
