package raid

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RefreshFunc re-renders one raid.
type RefreshFunc func(ctx context.Context, scope, raidID string)

type pendingRefresh struct {
	timer *time.Timer
	gen   uint64
}

// RefreshQueue debounces refresh requests per raid: every Queue call for a
// raid restarts its timer, and the refresh runs once the raid has been
// quiet for the delay.
type RefreshQueue struct {
	delay  time.Duration
	fn     RefreshFunc
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[string]*pendingRefresh
	seq     uint64
	closed  bool
	wg      sync.WaitGroup
}

// NewRefreshQueue creates a queue calling fn after delay.
func NewRefreshQueue(delay time.Duration, fn RefreshFunc, logger *zap.Logger) *RefreshQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &RefreshQueue{
		delay:   delay,
		fn:      fn,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[string]*pendingRefresh),
	}
}

// Queue schedules a refresh of the raid, postponing one already pending.
// It returns false once the queue is closed.
func (q *RefreshQueue) Queue(scope, raidID string) bool {
	key := scope + ":" + raidID

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}

	if p, ok := q.pending[key]; ok && p.timer.Stop() {
		// Stopped before firing, so its callback is still owed.
		p.timer.Reset(q.delay)
		return true
	}

	q.seq++
	gen := q.seq
	q.wg.Add(1)
	q.pending[key] = &pendingRefresh{
		gen: gen,
		timer: time.AfterFunc(q.delay, func() {
			q.fire(key, gen, scope, raidID)
		}),
	}
	return true
}

func (q *RefreshQueue) fire(key string, gen uint64, scope, raidID string) {
	defer q.wg.Done()

	q.mu.Lock()
	if p, ok := q.pending[key]; ok && p.gen == gen {
		delete(q.pending, key)
	}
	q.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			q.logger.Error("Refresh panicked", zap.String("scope", scope), zap.String("raid_id", raidID), zap.Any("panic", rec))
		}
	}()
	q.fn(q.ctx, scope, raidID)
}

// Pending returns the number of raids waiting for their timer.
func (q *RefreshQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close drops pending refreshes and waits for running ones to finish.
func (q *RefreshQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for key, p := range q.pending {
		if p.timer.Stop() {
			q.wg.Done()
		}
		delete(q.pending, key)
	}
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
}
