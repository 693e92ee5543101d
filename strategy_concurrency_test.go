package goGrant

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestConcurrentRequestsCoalesceIntoOneExchange(t *testing.T) {
	ex := &mockExchanger{manual: true}
	strategy, _ := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	const callers = 32

	var mu sync.Mutex
	results := make([]string, 0, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			start.Wait()
			strategy.RequestAccessToken(context.Background(), func(token string, ok bool) {
				mu.Lock()
				if ok {
					results = append(results, token)
				}
				mu.Unlock()
			})
		}()
	}
	start.Done()

	// Every caller must be queued before the completion fires.
	deadline := time.Now().Add(2 * time.Second)
	for {
		strategy.mu.Lock()
		queued := len(strategy.waiters)
		strategy.mu.Unlock()
		if queued == callers {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d callers queued", queued, callers)
		}
		time.Sleep(time.Millisecond)
	}

	ex.Fire(IssuedToken{Value: "B", CreatedAt: time.Now(), TTL: time.Hour}, nil)
	done.Wait()

	if ex.Calls() != 1 {
		t.Fatalf("expected exactly one exchange for %d concurrent callers, got %d", callers, ex.Calls())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != callers {
		t.Fatalf("expected %d successful callbacks, got %d", callers, len(results))
	}
	for i, token := range results {
		if token != "B" {
			t.Fatalf("caller %d got %q, want B", i, token)
		}
	}
}

func TestWaiterCallbacksRunInEnqueueOrder(t *testing.T) {
	ex := &mockExchanger{manual: true}
	strategy, _ := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		strategy.RequestAccessToken(context.Background(), func(string, bool) {
			order = append(order, i)
		})
	}

	ex.Fire(IssuedToken{Value: "B", CreatedAt: time.Now(), TTL: time.Hour}, nil)

	if len(order) != 5 {
		t.Fatalf("expected 5 callbacks, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("callback order %v, want enqueue order", order)
		}
	}
	if got := strategy.metrics.Value(MetricWaiterCoalesced); got != 4 {
		t.Fatalf("expected 4 coalesced waiters, got %d", got)
	}
}

func TestSequentialStaleRequestsEachTriggerExchange(t *testing.T) {
	ex := &mockExchanger{manual: true}
	strategy, mem := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	strategy.RequestAccessToken(context.Background(), func(string, bool) {})
	ex.Fire(IssuedToken{Value: "B", CreatedAt: time.Now(), TTL: time.Hour}, nil)

	// Invalidate and request again: a new refresh cycle must start.
	mem.Set(nil)
	strategy.RequestAccessToken(context.Background(), func(string, bool) {})
	ex.Fire(IssuedToken{Value: "C", CreatedAt: time.Now(), TTL: time.Hour}, nil)

	if ex.Calls() != 2 {
		t.Fatalf("expected two exchanges across two stale cycles, got %d", ex.Calls())
	}
	if cached := mem.Get(); cached == nil || cached.Value != "C" {
		t.Fatalf("expected store to hold C, got %+v", cached)
	}
}

func TestRequestDuringRefreshDoesNotStartSecondExchange(t *testing.T) {
	ex := &mockExchanger{manual: true}
	strategy, _ := newTestStrategy(t, mintAssertion(t, time.Now().Add(48*time.Hour)), ex)

	var first, second bool
	strategy.RequestAccessToken(context.Background(), func(_ string, ok bool) { first = ok })
	strategy.RequestAccessToken(context.Background(), func(_ string, ok bool) { second = ok })

	if ex.Calls() != 1 {
		t.Fatalf("expected one exchange with a refresh already in flight, got %d", ex.Calls())
	}

	ex.Fire(IssuedToken{Value: "B", CreatedAt: time.Now(), TTL: time.Hour}, nil)

	if !first || !second {
		t.Fatalf("expected both callers served by the single exchange, got first=%v second=%v", first, second)
	}
}
