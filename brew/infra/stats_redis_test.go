package infra

import (
	"context"
	"testing"
	"time"

	"coffee-machine/brew/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStatsStore_KeyLayout(t *testing.T) {
	at := time.Date(2030, 5, 2, 14, 7, 59, 0, time.FixedZone("", 2*3600))

	s := NewRedisStatsStore(nil, WithStatsPrefix(":brew:stats:"))
	assert.Equal(t, "brew:stats:total", s.key("total"))
	assert.Equal(t, "brew:stats:minute:203005021207", s.windowKey(at), "window is keyed in UTC")

	s = NewRedisStatsStore(nil, WithStatsBucket(" HOUR "))
	assert.Equal(t, "coffee:stats:hour:2030050212", s.windowKey(at))

	s = NewRedisStatsStore(nil, WithStatsBucket("none"))
	assert.Empty(t, s.windowKey(at))
}

func TestRedisStatsStore_EmptyPrefixKeepsDefault(t *testing.T) {
	s := NewRedisStatsStore(nil, WithStatsPrefix(" : "))
	assert.Equal(t, "coffee:stats:total", s.key("total"))
}

func TestRedisStatsStore_WithoutClient(t *testing.T) {
	s := NewRedisStatsStore(nil, WithStatsTrackKeys(true))

	// Record é best-effort e vira no-op; Totals precisa de dados e falha.
	assert.NoError(t, s.Record(context.Background(), domain.StatsEvent{Outcome: domain.OutcomeServed}))
	_, err := s.Totals(context.Background())
	assert.Error(t, err)
}

func TestParseOutcomeHash(t *testing.T) {
	got, err := parseOutcomeHash(map[string]string{"served": "4", "shed": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[domain.Outcome]int64{domain.OutcomeServed: 4, domain.OutcomeShed: 1}, got)

	_, err = parseOutcomeHash(map[string]string{"served": "many"})
	assert.Error(t, err)
}

func TestRedisStatsStore_RecordThenTotals(t *testing.T) {
	mr, rdb := newTestRedis(t)
	at := time.Date(2030, 5, 2, 14, 7, 0, 0, time.UTC)
	s := NewRedisStatsStore(rdb, WithStatsTTL(time.Hour), WithStatsTrackKeys(true))
	ctx := context.Background()

	events := []domain.StatsEvent{
		{Key: "10.0.0.1", Outcome: domain.OutcomeServed, Status: 200, Method: "GET", Path: "/brew-coffee", At: at},
		{Key: "10.0.0.1", Outcome: domain.OutcomeServed, Status: 200, Method: "GET", Path: "/brew-coffee", At: at},
		{Key: "10.0.0.2", Outcome: domain.OutcomeShed, Status: 503, Method: "GET", Path: "/brew-coffee", At: at},
		{Key: "10.0.0.2", Outcome: domain.OutcomeFallback, Status: 200, Method: "GET", Path: "/brew-coffee", At: at},
	}
	for _, ev := range events {
		require.NoError(t, s.Record(ctx, ev))
	}

	totals, err := s.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Outcome]int64{
		domain.OutcomeServed:   2,
		domain.OutcomeShed:     1,
		domain.OutcomeFallback: 1,
	}, totals)

	assert.Equal(t, "3", mr.HGet("coffee:stats:status", "200"))
	assert.Equal(t, "1", mr.HGet("coffee:stats:status", "503"))
	assert.Equal(t, "2", mr.HGet("coffee:stats:route", "GET /brew-coffee:served"))

	// janela e cliente expiram; os cumulativos não
	window := "coffee:stats:minute:203005021407"
	assert.Equal(t, "2", mr.HGet(window, "served"))
	assert.Equal(t, time.Hour, mr.TTL(window))

	client := "coffee:stats:key:10.0.0.2"
	assert.Equal(t, "1", mr.HGet(client, "shed"))
	assert.Equal(t, time.Hour, mr.TTL(client))

	assert.Zero(t, mr.TTL("coffee:stats:total"))
	assert.Zero(t, mr.TTL("coffee:stats:status"))
}

func TestRedisStatsStore_NoWindowAndNoKeys(t *testing.T) {
	mr, rdb := newTestRedis(t)
	s := NewRedisStatsStore(rdb, WithStatsBucket("none"))

	require.NoError(t, s.Record(context.Background(), domain.StatsEvent{Key: "10.0.0.1", Outcome: domain.OutcomeBusy}))

	assert.ElementsMatch(t, []string{"coffee:stats:total"}, mr.Keys())
}

func TestRedisStatsStore_EmptyTotals(t *testing.T) {
	_, rdb := newTestRedis(t)

	totals, err := NewRedisStatsStore(rdb).Totals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestRedisStatsStore_CorruptTotalIsError(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.HSet("coffee:stats:total", "served", "lots")

	_, err := NewRedisStatsStore(rdb).Totals(context.Background())
	assert.Error(t, err)
}
