package goGrant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/goGrant/jwt"
)

// Strategy defines a public type used by goGrant APIs.
//
// Strategy instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Strategy moves through four auth states: unauthenticated (assertion
// expired — terminal for the assertion's lifetime), authenticated-valid
// (cached token present and unexpired), authenticated-stale (token absent or
// expired, assertion still valid), and refreshing (exchange in flight). All
// state transitions are serialized under a single mutex; the waiter queue
// guarantees at most one exchange in flight regardless of caller count.
type Strategy struct {
	config    Config
	assertion *jwt.Assertion
	store     Store
	exchanger Exchanger
	audit     *auditDispatcher
	metrics   *Metrics
	now       func() time.Time

	mu         sync.Mutex
	waiters    []TokenCallback
	refreshing bool
	// generation advances on every Deauthorize. An exchange captures it
	// when it starts; a completion whose generation is stale skips the
	// store write so a deauthorize is never silently undone.
	generation uint64
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Strategy) Close() {
	if s == nil {
		return
	}
	if s.audit != nil {
		s.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Strategy) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Strategy) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

func (s *Strategy) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}

// RequestAccessToken describes the requestaccesstoken operation and its observable behavior.
//
// RequestAccessToken may return an error when input validation, dependency calls, or security checks fail.
// RequestAccessToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The callback is invoked exactly once: synchronously on the caller's stack
// when the cached token is valid or the assertion has expired, otherwise
// asynchronously when the in-flight exchange completes. A valid cached token
// costs one store read and nothing else.
func (s *Strategy) RequestAccessToken(ctx context.Context, callback TokenCallback) {
	if callback == nil {
		return
	}
	if s == nil || s.store == nil || s.exchanger == nil {
		callback("", false)
		return
	}

	now := s.now()

	s.mu.Lock()

	if cached := s.store.Get(); cached != nil && s.tokenUsable(cached, now) {
		s.mu.Unlock()
		s.metricInc(MetricTokenCacheHit)
		s.emitAudit(ctx, auditEventTokenCacheHit, true, "", nil, nil)
		callback(cached.Value, true)
		return
	}

	if s.assertion.Expired(now) {
		// Permanently unauthenticated for this assertion. Clearing an
		// already-empty store is a no-op.
		s.store.Set(nil)
		s.mu.Unlock()
		s.metricInc(MetricAssertionExpired)
		s.emitAudit(ctx, auditEventAssertionExpired, false, "", ErrAssertionExpired, nil)
		callback("", false)
		return
	}

	s.waiters = append(s.waiters, callback)
	if s.refreshing {
		s.mu.Unlock()
		s.metricInc(MetricWaiterCoalesced)
		return
	}
	s.refreshing = true
	gen := s.generation
	s.mu.Unlock()

	exchangeID := uuid.NewString()
	started := time.Now()
	s.metricInc(MetricExchangeStarted)
	s.emitAudit(ctx, auditEventExchangeStarted, true, exchangeID, nil, nil)

	s.exchanger.Exchange(ctx, s.assertion.Raw(), func(issued IssuedToken, err error) {
		s.finishRefresh(ctx, gen, exchangeID, started, issued, err)
	})
}

// finishRefresh is the exchange completion path. It runs on whatever
// goroutine the exchanger completes on; the waiter handoff and store update
// happen inside the strategy's critical section, callbacks outside it.
func (s *Strategy) finishRefresh(ctx context.Context, gen uint64, exchangeID string, started time.Time, issued IssuedToken, err error) {
	if s.metrics != nil && s.metrics.LatencyEnabled() {
		s.metrics.Observe(MetricExchangeLatency, time.Since(started))
	}

	suppressed := false

	s.mu.Lock()
	waiters := s.waiters
	s.waiters = nil
	s.refreshing = false
	if err != nil {
		s.store.Set(nil)
	} else {
		token := &CachedToken{
			Value:     issued.Value,
			ExpiresAt: issued.CreatedAt.Add(issued.TTL),
		}
		if s.generation == gen {
			s.store.Set(token)
		} else {
			suppressed = true
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.metricInc(MetricExchangeFailure)
		s.emitAudit(ctx, auditEventExchangeFailure, false, exchangeID, ErrExchangeFailed, func() map[string]string {
			return map[string]string{
				"cause": err.Error(),
			}
		})
		for _, cb := range waiters {
			cb("", false)
		}
		return
	}

	if suppressed {
		s.metricInc(MetricStoreWriteSuppressed)
		s.emitAudit(ctx, auditEventStoreWriteSuppress, true, exchangeID, nil, nil)
	}

	s.metricInc(MetricExchangeSuccess)
	s.emitAudit(ctx, auditEventExchangeSuccess, true, exchangeID, nil, nil)

	// Waiters queued before a concurrent deauthorize still receive the
	// issued value; only the persisted state honors the deauthorize.
	for _, cb := range waiters {
		cb(issued.Value, true)
	}
}

// AccessToken describes the accesstoken operation and its observable behavior.
//
// AccessToken may return an error when input validation, dependency calls, or security checks fail.
// AccessToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// It is the blocking form of RequestAccessToken: absence maps to
// ErrNotAuthorized, and a context cancelled while queued returns ctx.Err()
// without disturbing the pending refresh.
func (s *Strategy) AccessToken(ctx context.Context) (string, error) {
	if s == nil {
		return "", ErrStrategyNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	type outcome struct {
		value string
		ok    bool
	}
	// Buffered so a completion after cancellation never blocks the
	// exchanger's goroutine.
	ch := make(chan outcome, 1)

	s.RequestAccessToken(ctx, func(token string, ok bool) {
		ch <- outcome{value: token, ok: ok}
	})

	select {
	case res := <-ch:
		if !res.ok {
			return "", ErrNotAuthorized
		}
		return res.value, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Deauthorize describes the deauthorize operation and its observable behavior.
//
// Deauthorize may return an error when input validation, dependency calls, or security checks fail.
// Deauthorize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// It unconditionally clears the cached token and never fails. An in-flight
// exchange is not cancelled, but its eventual success will not repopulate
// the store: after Deauthorize returns, Authorized reports false until a
// request started after the deauthorize completes a fresh exchange.
func (s *Strategy) Deauthorize(ctx context.Context) {
	if s == nil || s.store == nil {
		return
	}

	s.mu.Lock()
	s.generation++
	s.store.Set(nil)
	s.mu.Unlock()

	s.metricInc(MetricDeauthorize)
	s.emitAudit(ctx, auditEventDeauthorize, true, "", nil, nil)
}

// Authorized describes the authorized operation and its observable behavior.
//
// Authorized may return an error when input validation, dependency calls, or security checks fail.
// Authorized does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// It is a snapshot, not a subscription: true iff a cached token is present
// and unexpired at the moment of the call.
func (s *Strategy) Authorized() bool {
	if s == nil || s.store == nil {
		return false
	}

	now := s.now()

	s.mu.Lock()
	cached := s.store.Get()
	s.mu.Unlock()

	return cached != nil && cached.ExpiresAt.After(now)
}

// tokenUsable applies the strict expiry comparison plus the configured
// refresh margin: a token expiring exactly at "now" is already expired.
func (s *Strategy) tokenUsable(token *CachedToken, now time.Time) bool {
	return token.ExpiresAt.After(now.Add(s.config.Token.RefreshMargin))
}
