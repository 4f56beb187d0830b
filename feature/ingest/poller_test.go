package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"raidtrack/core/reconcile"
	"raidtrack/feature/raid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeProcessor struct {
	mu     sync.Mutex
	seen   []string
	failOn   string
	rejectOn string
	calls    chan string
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{calls: make(chan string, 32)}
}

func (f *fakeProcessor) Reconcile(ctx context.Context, scope string, p raid.Payload) (*raid.Outcome, error) {
	f.mu.Lock()
	f.seen = append(f.seen, scope+"/"+p.RaidID)
	f.mu.Unlock()
	f.calls <- p.RaidID
	switch p.RaidID {
	case f.failOn:
		return nil, raid.ErrDestinationUnresolved
	case f.rejectOn:
		return nil, raid.ErrInvalidPayload
	}
	return &raid.Outcome{
		RaidID:         p.RaidID,
		Scope:          scope,
		Announcement:   reconcile.Result{Action: reconcile.ActionCreated},
		ScheduledEntry: reconcile.Result{Action: reconcile.ActionSkipped},
	}, nil
}

func (f *fakeProcessor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

const twoRaids = `RaidTrackExport = [=[[{"guildId":"g","raid":{"raidId":"r-1","startAt":100}},{"guildId":"g","raid":{"raidId":"r-2","startAt":200}}]]=]`

func setupPoller(t *testing.T, content string) (*Poller, *fakeProcessor, string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "RaidTrack.lua")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	cfg := Config{File: file, ExportKey: "RaidTrackExport", InstancesKey: "raidInstances", PresetsKey: "raidPresets", PollSeconds: 60}
	proc := newFakeProcessor()
	return NewPoller(cfg, NewDecoder(cfg, ""), proc, nil, zap.NewNop()), proc, file
}

func TestPoller_Cycle(t *testing.T) {
	p, proc, _ := setupPoller(t, twoRaids)
	ctx := context.Background()

	report, err := p.Cycle(ctx)
	require.NoError(t, err)
	assert.True(t, report.Changed)
	assert.NotEmpty(t, report.CycleID)
	assert.Equal(t, ModeJSON, report.Mode)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, reconcile.Summary{Created: 2, Skipped: 2}, report.Summary)
	assert.Equal(t, []string{"g/r-1", "g/r-2"}, proc.seen)

	status := p.Status()
	assert.Equal(t, 2, status.LastProcessedCount)
	assert.Equal(t, ModeJSON, status.Mode)
	assert.NotNil(t, status.LastCheck)
	assert.NotNil(t, status.LastChange)
	assert.Empty(t, status.LastError)
	assert.Equal(t, 60, status.IntervalSeconds)

	report, err = p.Cycle(ctx)
	require.NoError(t, err)
	assert.False(t, report.Changed)
	assert.Equal(t, 2, proc.count())

	report, err = p.Rescan(ctx)
	require.NoError(t, err)
	assert.True(t, report.Changed)
	assert.Equal(t, 4, proc.count())
}

func TestPoller_FailuresAreReported(t *testing.T) {
	t.Run("ReconcileFailure", func(t *testing.T) {
		p, proc, _ := setupPoller(t, twoRaids)
		proc.failOn = "r-1"

		report, err := p.Cycle(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Processed)
		assert.Equal(t, 1, report.Failed)
		assert.Contains(t, p.Status().LastError, "1 of 2")
	})

	t.Run("DecodeFailure", func(t *testing.T) {
		p, proc, _ := setupPoller(t, "nothing = 1")

		_, err := p.Cycle(context.Background())
		assert.ErrorIs(t, err, ErrNoExport)
		assert.Contains(t, p.Status().LastError, "parse failed")
		assert.Zero(t, proc.count())
	})

	t.Run("MissingFile", func(t *testing.T) {
		p, _, file := setupPoller(t, twoRaids)
		require.NoError(t, os.Remove(file))

		_, err := p.Cycle(context.Background())
		assert.ErrorIs(t, err, ErrTransientIO)
		assert.NotEmpty(t, p.Status().LastError)
	})
}

func TestPoller_RunReactsToWrites(t *testing.T) {
	ignore := goleak.IgnoreCurrent()
	defer goleak.VerifyNone(t, ignore)

	p, proc, file := setupPoller(t, twoRaids)
	p.cfg.Watch = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	waitCalls(t, proc, 2)

	updated := `RaidTrackExport = [[{"guildId":"g","raid":{"raidId":"r-3","raidTitle":"fresh","startAt":300}}]]`
	require.NoError(t, os.WriteFile(file, []byte(updated), 0o644))
	waitCalls(t, proc, 1)

	cancel()
	require.NoError(t, <-done)
	assert.True(t, p.Status().Watching)
}

func waitCalls(t *testing.T, proc *fakeProcessor, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-proc.calls:
		case <-time.After(5 * time.Second):
			t.Fatal(errors.New("processor was not called"))
		}
	}
}
