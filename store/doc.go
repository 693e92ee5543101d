// Package store provides auth-state backends for goGrant: the [Store]
// contract plus an in-memory implementation and a Redis-backed one.
//
// The strategy reads the state at the start of every access-token request and
// writes it after every successful refresh or on deauthorization; backends
// provide no concurrency guarantees of their own and rely on the strategy's
// serialization.
package store
