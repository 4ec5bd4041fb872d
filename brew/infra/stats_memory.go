package infra

import (
	"context"
	"strings"
	"sync"

	"coffee-machine/brew/domain"
)

// Counters acumula quantas requisições terminaram em cada Outcome.
type Counters map[domain.Outcome]int64

// MemoryStatsStore guarda as estatísticas do processo, sem expiração.
// Serve para uma instância só; com várias réplicas use RedisStatsStore.
type MemoryStatsStore struct {
	mu        sync.Mutex
	dims      map[dimension]Counters
	trackKeys bool
}

// dimension identifica um agrupamento: o total, uma rota ou um cliente.
type dimension struct {
	kind  string
	value string
}

var dimTotal = dimension{kind: "total"}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackKeys(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackKeys = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{dims: make(map[dimension]Counters)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	dims := []dimension{dimTotal}
	if route := strings.TrimSpace(ev.Method + " " + ev.Path); route != "" {
		dims = append(dims, dimension{kind: "route", value: route})
	}
	if s.trackKeys && ev.Key != "" {
		dims = append(dims, dimension{kind: "key", value: string(ev.Key)})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range dims {
		c := s.dims[d]
		if c == nil {
			c = make(Counters)
			s.dims[d] = c
		}
		c[ev.Outcome]++
	}
	return nil
}

// Totals implementa domain.StatsReader.
func (s *MemoryStatsStore) Totals(context.Context) (map[domain.Outcome]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.Outcome]int64, len(s.dims[dimTotal]))
	for o, n := range s.dims[dimTotal] {
		out[o] = n
	}
	return out, nil
}

// ByRoute retorna uma cópia dos contadores por "MÉTODO /path".
func (s *MemoryStatsStore) ByRoute() map[string]Counters { return s.snapshot("route") }

// ByKey retorna uma cópia dos contadores por cliente (vazio sem WithTrackKeys).
func (s *MemoryStatsStore) ByKey() map[string]Counters { return s.snapshot("key") }

func (s *MemoryStatsStore) snapshot(kind string) map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Counters)
	for d, c := range s.dims {
		if d.kind != kind {
			continue
		}
		cp := make(Counters, len(c))
		for o, n := range c {
			cp[o] = n
		}
		out[d.value] = cp
	}
	return out
}
