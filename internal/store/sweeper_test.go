package store_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/serroba/url-registry/internal/shortener"
	"github.com/serroba/url-registry/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingExpirer struct {
	calls atomic.Int64
}

func (c *countingExpirer) Sweep(_ context.Context, _ time.Time) int {
	c.calls.Add(1)

	return 0
}

func TestSweeper(t *testing.T) {
	t.Run("sweeps periodically until shutdown", func(t *testing.T) {
		target := &countingExpirer{}
		s := store.NewSweeper(target, 5*time.Millisecond, nil, zap.NewNop())

		require.NoError(t, s.Start(context.Background()))

		assert.Eventually(t, func() bool {
			return target.calls.Load() >= 2
		}, time.Second, 5*time.Millisecond)

		require.NoError(t, s.Shutdown())

		calls := target.calls.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, calls, target.calls.Load(), "no sweeps after shutdown")
	})

	t.Run("expires registry entries without new shorten calls", func(t *testing.T) {
		clock := newFakeClock()
		r := newTestRegistry(t, clock, store.Config{TTL: time.Minute})

		entry, err := r.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		clock.Advance(2 * time.Minute)

		s := store.NewSweeper(r, 5*time.Millisecond, clock.Now, zap.NewNop())
		require.NoError(t, s.Start(context.Background()))

		defer func() { _ = s.Shutdown() }()

		assert.Eventually(t, func() bool {
			return r.Len() == 0
		}, time.Second, 5*time.Millisecond)

		_, err = r.Resolve(context.Background(), entry.Code)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		target := &countingExpirer{}
		s := store.NewSweeper(target, 5*time.Millisecond, nil, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, s.Start(ctx))

		cancel()

		assert.NoError(t, s.Shutdown())
	})

	t.Run("disabled with non-positive interval", func(t *testing.T) {
		target := &countingExpirer{}
		s := store.NewSweeper(target, 0, nil, zap.NewNop())

		require.NoError(t, s.Start(context.Background()))
		time.Sleep(10 * time.Millisecond)

		assert.Zero(t, target.calls.Load())
		assert.NoError(t, s.Shutdown())
	})

	t.Run("shutdown without start is a no-op", func(t *testing.T) {
		s := store.NewSweeper(&countingExpirer{}, time.Second, nil, zap.NewNop())

		assert.NoError(t, s.Shutdown())
	})
}
