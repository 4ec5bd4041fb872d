package infra

import (
	"context"
	"testing"

	"coffee-machine/brew/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatsStore_RecordAndTotals(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	for _, o := range []domain.Outcome{domain.OutcomeServed, domain.OutcomeServed, domain.OutcomeShed} {
		require.NoError(t, s.Record(ctx, domain.StatsEvent{Key: "ip:1", Outcome: o, Method: "GET", Path: "/brew-coffee"}))
	}

	totals, err := s.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals[domain.OutcomeServed])
	assert.Equal(t, int64(1), totals[domain.OutcomeShed])

	routes := s.ByRoute()
	assert.Equal(t, int64(2), routes["GET /brew-coffee"][domain.OutcomeServed])

	assert.Empty(t, s.ByKey(), "keys are not tracked by default")
}

func TestMemoryStatsStore_TrackKeys(t *testing.T) {
	s := NewMemoryStatsStore(WithTrackKeys(true))
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, domain.StatsEvent{Key: "ip:1", Outcome: domain.OutcomeFallback}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Key: "ip:2", Outcome: domain.OutcomeServed}))

	keys := s.ByKey()
	assert.Equal(t, int64(1), keys["ip:1"][domain.OutcomeFallback])
	assert.Equal(t, int64(1), keys["ip:2"][domain.OutcomeServed])
}

func TestMemoryStatsStore_TotalsIsACopy(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Outcome: domain.OutcomeServed}))

	totals, _ := s.Totals(ctx)
	totals[domain.OutcomeServed] = 100

	again, _ := s.Totals(ctx)
	assert.Equal(t, int64(1), again[domain.OutcomeServed])
}
