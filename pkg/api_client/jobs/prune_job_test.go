package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingPruner struct {
	calls   atomic.Int32
	removed int
}

func (p *countingPruner) Prune(time.Time) int {
	p.calls.Add(1)
	return p.removed
}

func TestPruneFunc(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var seen time.Time
	store := prunerFunc(func(now time.Time) int {
		seen = now
		return 2
	})

	pruneFunc(store, zap.NewNop(), func() time.Time { return fixed })()

	assert.Equal(t, fixed, seen)
}

func TestSchedulePruneRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &countingPruner{removed: 1}

	c, err := SchedulePrune(ctx, "@every 1s", store, nil)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)

	assert.Eventually(t, func() bool { return store.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestSchedulePruneRejectsBadSpec(t *testing.T) {
	_, err := SchedulePrune(context.Background(), "every now and then", &countingPruner{}, nil)
	assert.Error(t, err)
}

type prunerFunc func(time.Time) int

func (f prunerFunc) Prune(now time.Time) int { return f(now) }
