package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("CachesWithinTTL", func(t *testing.T) {
		c := NewCache[string](time.Minute)
		now := time.Unix(1000, 0)
		c.now = func() time.Time { return now }

		var loads int
		load := func(ctx context.Context) (string, error) {
			loads++
			return "channel", nil
		}

		for i := 0; i < 3; i++ {
			v, err := c.GetOrLoad(ctx, "k", load)
			require.NoError(t, err)
			assert.Equal(t, "channel", v)
		}
		assert.Equal(t, 1, loads)

		now = now.Add(2 * time.Minute)
		_, _ = c.GetOrLoad(ctx, "k", load)
		assert.Equal(t, 2, loads)

		c.Invalidate("k")
		_, _ = c.GetOrLoad(ctx, "k", load)
		assert.Equal(t, 3, loads)
	})

	t.Run("FailuresAreNotCached", func(t *testing.T) {
		c := NewCache[int](time.Minute)
		calls := 0
		fail := func(ctx context.Context) (int, error) {
			calls++
			return 0, assert.AnError
		}

		_, err := c.GetOrLoad(ctx, "k", fail)
		assert.ErrorIs(t, err, assert.AnError)
		_, err = c.GetOrLoad(ctx, "k", fail)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, calls)
	})

	t.Run("ZeroTTLDisablesStorage", func(t *testing.T) {
		c := NewCache[int](0)
		calls := 0
		load := func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		}

		a, _ := c.GetOrLoad(ctx, "k", load)
		b, _ := c.GetOrLoad(ctx, "k", load)
		assert.Equal(t, 1, a)
		assert.Equal(t, 2, b)
	})

	t.Run("ConcurrentMissesShareOneLoad", func(t *testing.T) {
		c := NewCache[int](time.Minute)
		var calls atomic.Int32
		release := make(chan struct{})
		load := func(ctx context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 7, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := c.GetOrLoad(ctx, "k", load)
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})
}
