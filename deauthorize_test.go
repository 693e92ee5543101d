package goGrant

import (
	"context"
	"testing"
	"time"
)

func TestDeauthorizeClearsTokenImmediately(t *testing.T) {
	ex := &mockExchanger{}
	strategy, mem := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	mem.Set(&CachedToken{Value: "A", ExpiresAt: time.Now().Add(time.Hour)})
	if !strategy.Authorized() {
		t.Fatal("expected authorized before deauthorize")
	}

	strategy.Deauthorize(context.Background())

	if mem.Get() != nil {
		t.Fatal("expected store cleared after deauthorize")
	}
	if strategy.Authorized() {
		t.Fatal("expected not authorized after deauthorize")
	}

	// Idempotent on an already-empty store.
	strategy.Deauthorize(context.Background())
	if got := strategy.metrics.Value(MetricDeauthorize); got != 2 {
		t.Fatalf("expected 2 deauthorize operations recorded, got %d", got)
	}
}

func TestDeauthorizeDuringRefreshSuppressesStoreWrite(t *testing.T) {
	ex := &mockExchanger{manual: true}
	strategy, mem := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	var gotValue string
	var gotOK bool
	strategy.RequestAccessToken(context.Background(), func(token string, ok bool) {
		gotValue, gotOK = token, ok
	})
	if ex.Calls() != 1 {
		t.Fatalf("expected exchange in flight, got %d calls", ex.Calls())
	}

	strategy.Deauthorize(context.Background())

	ex.Fire(IssuedToken{Value: "B", CreatedAt: time.Now(), TTL: time.Hour}, nil)

	// The queued waiter still receives the issued value.
	if !gotOK || gotValue != "B" {
		t.Fatalf("expected waiter to receive B, got %q ok=%v", gotValue, gotOK)
	}
	// The persisted state honors the deauthorize.
	if mem.Get() != nil {
		t.Fatal("expected store to stay empty after deauthorize raced the refresh")
	}
	if strategy.Authorized() {
		t.Fatal("expected not authorized after suppressed write")
	}
	if got := strategy.metrics.Value(MetricStoreWriteSuppressed); got != 1 {
		t.Fatalf("expected 1 suppressed store write, got %d", got)
	}
}

func TestRequestAfterDeauthorizeRepopulates(t *testing.T) {
	ex := &mockExchanger{issued: IssuedToken{Value: "B", CreatedAt: time.Now(), TTL: time.Hour}}
	strategy, mem := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	mem.Set(&CachedToken{Value: "A", ExpiresAt: time.Now().Add(time.Hour)})
	strategy.Deauthorize(context.Background())

	var gotValue string
	strategy.RequestAccessToken(context.Background(), func(token string, _ bool) {
		gotValue = token
	})

	if gotValue != "B" {
		t.Fatalf("expected fresh exchange after deauthorize, got %q", gotValue)
	}
	if cached := mem.Get(); cached == nil || cached.Value != "B" {
		t.Fatalf("expected store repopulated with B, got %+v", cached)
	}
	if !strategy.Authorized() {
		t.Fatal("expected authorized after post-deauthorize refresh")
	}
}
