package raid

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type refreshRecorder struct {
	mu    sync.Mutex
	calls []string
	done  chan string
}

func newRefreshRecorder() *refreshRecorder {
	return &refreshRecorder{done: make(chan string, 16)}
}

func (r *refreshRecorder) fn(ctx context.Context, scope, raidID string) {
	r.mu.Lock()
	r.calls = append(r.calls, scope+":"+raidID)
	r.mu.Unlock()
	r.done <- raidID
}

func (r *refreshRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestRefreshQueue_Coalesces(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := newRefreshRecorder()
	q := NewRefreshQueue(50*time.Millisecond, rec.fn, zap.NewNop())
	defer q.Close()

	assert.True(t, q.Queue("g", "r-1"))
	assert.True(t, q.Queue("g", "r-1"))
	assert.True(t, q.Queue("g", "r-1"))
	assert.Equal(t, 1, q.Pending())

	select {
	case id := <-rec.done:
		assert.Equal(t, "r-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh never ran")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 0, q.Pending())
}

func TestRefreshQueue_SeparateRaids(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := newRefreshRecorder()
	q := NewRefreshQueue(20*time.Millisecond, rec.fn, zap.NewNop())

	q.Queue("g", "r-1")
	q.Queue("g", "r-2")

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-rec.done:
			got[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("refresh never ran")
		}
	}
	assert.Equal(t, map[string]bool{"r-1": true, "r-2": true}, got)
	q.Close()
}

func TestRefreshQueue_RequeueAfterFire(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := newRefreshRecorder()
	q := NewRefreshQueue(10*time.Millisecond, rec.fn, zap.NewNop())

	q.Queue("g", "r-1")
	<-rec.done
	q.Queue("g", "r-1")
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("second refresh never ran")
	}
	q.Close()
	assert.Equal(t, 2, rec.count())
}

func TestRefreshQueue_CloseDropsPending(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := newRefreshRecorder()
	q := NewRefreshQueue(time.Hour, rec.fn, zap.NewNop())

	q.Queue("g", "r-1")
	q.Close()
	q.Close()

	assert.False(t, q.Queue("g", "r-2"))
	assert.Equal(t, 0, rec.count())
	assert.Equal(t, 0, q.Pending())
}

func TestRefreshQueue_RecoversPanic(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	done := make(chan struct{})
	q := NewRefreshQueue(time.Millisecond, func(ctx context.Context, scope, raidID string) {
		defer close(done)
		panic("boom")
	}, zap.NewNop())

	q.Queue("g", "r-1")
	<-done
	q.Close()
}
