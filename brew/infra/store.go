package infra

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"coffee-machine/brew/domain"

	"golang.org/x/time/rate"
)

// TokenBucketStore dá a cada cliente o seu próprio token bucket
// (golang.org/x/time/rate). Buckets sem uso por idleTTL são descartados
// pelo janitor.
type TokenBucketStore struct {
	limit rate.Limit
	burst int

	idleTTL      time.Duration
	cleanupEvery time.Duration

	mu      sync.RWMutex
	buckets map[domain.Key]*bucket
}

type bucket struct {
	*rate.Limiter
	lastSeen atomic.Int64 // unix nano
}

func (b *bucket) touch(now time.Time) { b.lastSeen.Store(now.UnixNano()) }

type StoreOption func(*TokenBucketStore)

func WithIdleTTL(d time.Duration) StoreOption {
	return func(s *TokenBucketStore) { s.idleTTL = d }
}

// WithCleanupEvery define o intervalo do janitor; <= 0 desliga a limpeza periódica.
func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *TokenBucketStore) { s.cleanupEvery = d }
}

func NewTokenBucketStore(rps float64, burst int, opts ...StoreOption) *TokenBucketStore {
	s := &TokenBucketStore{
		limit:        rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		buckets:      make(map[domain.Key]*bucket),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenBucketStore) RPS() float64 { return float64(s.limit) }
func (s *TokenBucketStore) Burst() int   { return s.burst }

// Get implementa domain.LimiterStore.
func (s *TokenBucketStore) Get(key domain.Key) domain.Limiter {
	now := time.Now()

	s.mu.RLock()
	b, ok := s.buckets[key]
	s.mu.RUnlock()
	if ok {
		b.touch(now)
		return b.Limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// outra goroutine pode ter criado entre os locks
	if b, ok := s.buckets[key]; ok {
		b.touch(now)
		return b.Limiter
	}
	b = &bucket{Limiter: rate.NewLimiter(s.limit, s.burst)}
	b.touch(now)
	s.buckets[key] = b
	return b.Limiter
}

// Len retorna quantos clientes têm bucket agora.
func (s *TokenBucketStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}

// Cleanup descarta os buckets ociosos e retorna quantos foram removidos.
func (s *TokenBucketStore) Cleanup() int {
	cutoff := time.Now().Add(-s.idleTTL).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, b := range s.buckets {
		if b.lastSeen.Load() < cutoff {
			delete(s.buckets, k)
			removed++
		}
	}
	return removed
}

// RunJanitor roda Cleanup a cada cleanupEvery até o ctx encerrar.
// Bloqueia; o servidor roda no mesmo errgroup.
func (s *TokenBucketStore) RunJanitor(ctx context.Context) error {
	if s.cleanupEvery <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(s.cleanupEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.Cleanup()
		}
	}
}
