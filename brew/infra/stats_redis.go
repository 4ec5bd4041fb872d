package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"coffee-machine/brew/domain"

	"github.com/redis/go-redis/v9"
)

// Layout das chaves, com prefix = "coffee:stats":
//
//	coffee:stats:total               hash outcome -> n (cumulativo, sem TTL)
//	coffee:stats:status              hash status HTTP -> n (cumulativo, sem TTL)
//	coffee:stats:route               hash "GET /brew-coffee:served" -> n
//	coffee:stats:minute:203005021400 hash outcome -> n (expira em ttl)
//	coffee:stats:key:10.0.0.1        hash outcome -> n (expira em ttl, opcional)
var bucketLayouts = map[string]string{
	"minute": "200601021504",
	"hour":   "2006010215",
}

// RedisStatsStore guarda os Outcomes de preparo em hashes do redis, para que
// várias instâncias somem no mesmo lugar.
type RedisStatsStore struct {
	rdb       *redis.Client
	prefix    string
	ttl       time.Duration
	bucket    string
	trackKeys bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		if p := strings.Trim(strings.TrimSpace(prefix), ":"); p != "" {
			s.prefix = p
		}
	}
}

// WithStatsTTL define a expiração das chaves por janela e por cliente.
// Os hashes cumulativos nunca expiram.
func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

// WithStatsBucket escolhe a janela da série temporal: "minute", "hour" ou
// "none". Valor desconhecido desliga a série.
func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackKeys = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "coffee:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) key(parts ...string) string {
	return s.prefix + ":" + strings.Join(parts, ":")
}

// windowKey retorna a chave da janela que contém at, ou "" sem série temporal.
func (s *RedisStatsStore) windowKey(at time.Time) string {
	layout, ok := bucketLayouts[s.bucket]
	if !ok {
		return ""
	}
	return s.key(s.bucket, at.UTC().Format(layout))
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	outcome := string(ev.Outcome)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, s.key("total"), outcome, 1)
		if ev.Status > 0 {
			pipe.HIncrBy(ctx, s.key("status"), strconv.Itoa(ev.Status), 1)
		}
		if route := strings.TrimSpace(ev.Method + " " + ev.Path); route != "" {
			pipe.HIncrBy(ctx, s.key("route"), route+":"+outcome, 1)
		}
		if wk := s.windowKey(ev.At); wk != "" {
			s.incrExpiring(ctx, pipe, wk, outcome)
		}
		if k := strings.TrimSpace(string(ev.Key)); s.trackKeys && k != "" {
			s.incrExpiring(ctx, pipe, s.key("key", k), outcome)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record brew stats: %w", err)
	}
	return nil
}

func (s *RedisStatsStore) incrExpiring(ctx context.Context, pipe redis.Pipeliner, key, field string) {
	pipe.HIncrBy(ctx, key, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
}

// Totals implementa domain.StatsReader lendo o hash cumulativo.
func (s *RedisStatsStore) Totals(ctx context.Context) (map[domain.Outcome]int64, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("read brew stats: no redis client")
	}
	raw, err := s.rdb.HGetAll(ctx, s.key("total")).Result()
	if err != nil {
		return nil, fmt.Errorf("read brew stats: %w", err)
	}
	return parseOutcomeHash(raw)
}

func parseOutcomeHash(raw map[string]string) (map[domain.Outcome]int64, error) {
	out := make(map[domain.Outcome]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("brew stats field %q: %w", field, err)
		}
		out[domain.Outcome(field)] = n
	}
	return out, nil
}
