package infra

import (
	"context"
	"math"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCounter_DefaultAndCustomKey(t *testing.T) {
	assert.Equal(t, "coffee:requests", NewRedisCounter(nil).key)
	assert.Equal(t, "brews", NewRedisCounter(nil, WithCounterKey(" brews ")).key)
	assert.Equal(t, "coffee:requests", NewRedisCounter(nil, WithCounterKey("  ")).key)
}

func TestRedisCounter_NoClientIsError(t *testing.T) {
	_, err := NewRedisCounter(nil).Next(context.Background())
	require.Error(t, err)
}

func TestRedisCounter_UnreachableServerSurfacesError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisCounter(rdb).Next(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coffee:requests")
}

func TestRedisCounter_SequentialValues(t *testing.T) {
	_, rdb := newTestRedis(t)
	c := NewRedisCounter(rdb)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := c.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRedisCounter_ConcurrentValuesAreExactlyOneToN(t *testing.T) {
	const n = 202
	_, rdb := newTestRedis(t)
	c := NewRedisCounter(rdb)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]int, n)
		shed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Next(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			seen[v]++
			if v%5 == 0 {
				shed++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
	for v := int64(1); v <= n; v++ {
		assert.Equal(t, 1, seen[v], "value %d", v)
	}
	assert.Equal(t, 40, shed)
}

func TestRedisCounter_WrapsAtMaxInt32(t *testing.T) {
	mr, rdb := newTestRedis(t)
	c := NewRedisCounter(rdb, WithCounterKey("brews"))
	ctx := context.Background()

	require.NoError(t, mr.Set("brews", strconv.Itoa(math.MaxInt32-1)))

	want := []int64{math.MaxInt32, math.MinInt32, math.MinInt32 + 1}
	for _, w := range want {
		got, err := c.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	stored, err := mr.Get("brews")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(math.MinInt32+1), stored)
}

func TestRedisCounter_ResetStartsOver(t *testing.T) {
	mr, rdb := newTestRedis(t)
	c := NewRedisCounter(rdb)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Next(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, c.Reset(ctx))
	assert.False(t, mr.Exists("coffee:requests"))

	got, err := c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRedisCounter_KeysAreIndependent(t *testing.T) {
	_, rdb := newTestRedis(t)
	a := NewRedisCounter(rdb, WithCounterKey("a"))
	b := NewRedisCounter(rdb, WithCounterKey("b"))
	ctx := context.Background()
	t.Cleanup(func() {
		_ = a.Reset(ctx)
		_ = b.Reset(ctx)
	})

	_, _ = a.Next(ctx)
	_, _ = a.Next(ctx)
	got, err := b.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
