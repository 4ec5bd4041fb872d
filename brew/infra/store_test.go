package infra

import (
	"context"
	"testing"
	"time"

	"coffee-machine/brew/domain"
)

func TestTokenBucketStore_GetSameKeyReturnsSameLimiter(t *testing.T) {
	s := NewTokenBucketStore(10, 1)

	l1 := s.Get(domain.Key("k"))
	l2 := s.Get(domain.Key("k"))
	if l1 != l2 {
		t.Fatalf("expected same limiter pointer for same key")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 cached key, got %d", s.Len())
	}
}

func TestTokenBucketStore_LowBurstRejectsSecondImmediateAllow(t *testing.T) {
	s := NewTokenBucketStore(0.02, 1)

	lim := s.Get(domain.Key("k"))
	if !lim.Allow() {
		t.Fatalf("expected first Allow to be true")
	}
	if lim.Allow() {
		t.Fatalf("expected second immediate Allow to be false (burst=1)")
	}
}

func TestTokenBucketStore_KeysAreIsolated(t *testing.T) {
	s := NewTokenBucketStore(0.02, 1)

	if !s.Get(domain.Key("a")).Allow() {
		t.Fatalf("expected first Allow for a")
	}
	if !s.Get(domain.Key("b")).Allow() {
		t.Fatalf("expected first Allow for b, buckets must not be shared")
	}
}

func TestTokenBucketStore_CleanupRemovesIdleEntries(t *testing.T) {
	s := NewTokenBucketStore(10, 1, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	before := s.Get(domain.Key("k"))
	time.Sleep(4 * time.Millisecond)

	if removed := s.Cleanup(); removed != 1 {
		t.Fatalf("expected 1 idle entry removed, got %d", removed)
	}
	if s.Len() != 0 {
		t.Fatalf("expected idle entry to be removed, got %d", s.Len())
	}

	after := s.Get(domain.Key("k"))
	if before == after {
		t.Fatalf("expected limiter to be recreated after cleanup")
	}
}

func TestTokenBucketStore_RunJanitorStopsOnCancel(t *testing.T) {
	s := NewTokenBucketStore(10, 1, WithIdleTTL(time.Millisecond), WithCleanupEvery(time.Millisecond))
	s.Get(domain.Key("k"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunJanitor(ctx) }()

	deadline := time.Now().Add(time.Second)
	for s.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if s.Len() != 0 {
		t.Fatalf("expected janitor to clean idle entry")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("janitor did not stop after cancel")
	}
}
