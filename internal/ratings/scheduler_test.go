package ratings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSyncer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingSyncer) Sync(ctx context.Context, opts SyncOptions) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return Result{}, nil
}

func TestNewScheduler(t *testing.T) {
	t.Run("rejects invalid spec", func(t *testing.T) {
		_, err := NewScheduler(&countingSyncer{}, "every now and then")
		require.Error(t, err)
	})

	t.Run("next run follows spec", func(t *testing.T) {
		s, err := NewScheduler(&countingSyncer{}, "@every 1h")
		require.NoError(t, err)
		s.Start()
		defer s.Stop()

		next := s.Next()
		assert.WithinDuration(t, time.Now().Add(time.Hour), next, time.Minute)
	})

	t.Run("run invokes the syncer", func(t *testing.T) {
		syncer := &countingSyncer{}
		s, err := NewScheduler(syncer, "@daily")
		require.NoError(t, err)

		s.run()
		assert.Equal(t, 1, syncer.calls)
	})
}
