// Package goGrant manages the lifecycle of a short-lived bearer access token
// derived from a long-lived signed assertion (a JWT), for clients that must
// present a valid token on outbound calls while minimizing exchange
// round-trips.
//
// The package is designed for concurrent client workloads: Strategy methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goGrant is the public surface. It exposes [Strategy], [Builder], [Config],
// and value types (CachedToken, IssuedToken, MetricsSnapshot, etc.). The
// credential-exchange transport and the persistent auth-state backend are
// injected collaborators behind [Exchanger] and [Store]; goGrant never
// performs the exchange network call itself.
//
// # What this package must NOT do
//
//   - Start a second exchange while one is in flight for the same Strategy
//     instance. Concurrent callers coalesce onto the pending refresh.
//   - Perform network or storage-write I/O on the fast path (cached token
//     present and unexpired).
//   - Surface exchange errors through the callback boundary. Callers see a
//     token value or an absence signal, nothing else.
//
// # Performance contract
//
// RequestAccessToken with a valid cached token is the hot path. It must
// complete synchronously on the caller's stack with a single store read and
// no exchanger invocation.
package goGrant
