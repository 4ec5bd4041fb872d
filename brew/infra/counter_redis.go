package infra

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/redis/go-redis/v9"
)

// O script roda atômico no servidor. Aplica o mesmo wrap de int32 do
// MemoryCounter para que a cadência de 503 não mude ao trocar de backend.
var nextScript = redis.NewScript(`
local v = tonumber(redis.call('GET', KEYS[1]) or '0')
if v >= tonumber(ARGV[1]) then
  v = tonumber(ARGV[2])
else
  v = v + 1
end
redis.call('SET', KEYS[1], v)
return v
`)

// RedisCounter compartilha o contador entre várias instâncias do serviço.
type RedisCounter struct {
	rdb *redis.Client
	key string
}

type RedisCounterOption func(*RedisCounter)

func WithCounterKey(key string) RedisCounterOption {
	return func(c *RedisCounter) {
		if k := strings.TrimSpace(key); k != "" {
			c.key = k
		}
	}
}

func NewRedisCounter(rdb *redis.Client, opts ...RedisCounterOption) *RedisCounter {
	c := &RedisCounter{
		rdb: rdb,
		key: "coffee:requests",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCounter) Next(ctx context.Context) (int64, error) {
	if c == nil || c.rdb == nil {
		return 0, fmt.Errorf("redis counter: no client")
	}
	n, err := nextScript.Run(ctx, c.rdb, []string{c.key}, math.MaxInt32, math.MinInt32).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis counter %q: %w", c.key, err)
	}
	return n, nil
}

// Reset zera o contador. Útil em ambientes de teste.
func (c *RedisCounter) Reset(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}
