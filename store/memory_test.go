package store

import (
	"testing"
	"time"
)

func TestMemoryGetEmptyReturnsNil(t *testing.T) {
	m := NewMemory()
	if m.Get() != nil {
		t.Fatal("expected nil from an empty store")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	exp := time.Now().Add(time.Hour)

	m.Set(&Token{Value: "A", ExpiresAt: exp})

	got := m.Get()
	if got == nil || got.Value != "A" || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestMemorySetNilClears(t *testing.T) {
	m := NewMemory()
	m.Set(&Token{Value: "A", ExpiresAt: time.Now().Add(time.Hour)})

	m.Set(nil)
	if m.Get() != nil {
		t.Fatal("expected cleared store")
	}

	// Clearing an empty store is a no-op.
	m.Set(nil)
	if m.Get() != nil {
		t.Fatal("expected store still empty")
	}
}

func TestMemoryCopiesOnReadAndWrite(t *testing.T) {
	m := NewMemory()
	in := &Token{Value: "A", ExpiresAt: time.Now().Add(time.Hour)}
	m.Set(in)

	// Mutating the caller's token must not reach the store.
	in.Value = "mutated"
	if got := m.Get(); got.Value != "A" {
		t.Fatalf("store shared the caller's token: %+v", got)
	}

	// Mutating a read result must not reach the store either.
	out := m.Get()
	out.Value = "mutated"
	if got := m.Get(); got.Value != "A" {
		t.Fatalf("store shared its internal token: %+v", got)
	}
}
