package goGrant

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricTokenCacheHit)
	m.Inc(MetricExchangeSuccess)

	if got := m.Value(MetricTokenCacheHit); got != 0 {
		t.Fatalf("expected 0 with metrics disabled, got %d", got)
	}

	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot with metrics disabled, got %d counters", len(snap.Counters))
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricTokenCacheHit)
	m.Inc(MetricTokenCacheHit)
	m.Inc(MetricExchangeFailure)

	if got := m.Value(MetricTokenCacheHit); got != 2 {
		t.Fatalf("expected 2 cache hits, got %d", got)
	}
	if got := m.Value(MetricExchangeFailure); got != 1 {
		t.Fatalf("expected 1 failure, got %d", got)
	}

	snap := m.Snapshot()
	if snap.Counters[MetricTokenCacheHit] != 2 {
		t.Fatalf("snapshot disagrees with Value: %d", snap.Counters[MetricTokenCacheHit])
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perGoroutine = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.Inc(MetricExchangeStarted)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricExchangeStarted); got != goroutines*perGoroutine {
		t.Fatalf("expected %d, got %d", goroutines*perGoroutine, got)
	}
}

func TestMetricsLatencyHistogramBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricExchangeLatency, 2*time.Millisecond)
	m.Observe(MetricExchangeLatency, 8*time.Millisecond)
	m.Observe(MetricExchangeLatency, 40*time.Millisecond)
	m.Observe(MetricExchangeLatency, 900*time.Millisecond)

	snap := m.Snapshot()
	buckets, ok := snap.Histograms[MetricExchangeLatency]
	if !ok {
		t.Fatal("expected latency histogram in snapshot")
	}

	want := map[int]uint64{0: 1, 1: 1, 3: 1, 7: 1}
	for i, count := range buckets {
		if count != want[i] {
			t.Fatalf("bucket %d = %d, want %d (buckets %v)", i, count, want[i], buckets)
		}
	}
}

func TestMetricsObserveIgnoresNonLatencyIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricTokenCacheHit, 10*time.Millisecond)

	snap := m.Snapshot()
	for _, count := range snap.Histograms[MetricExchangeLatency] {
		if count != 0 {
			t.Fatalf("expected empty histogram, got %v", snap.Histograms[MetricExchangeLatency])
		}
	}
}
