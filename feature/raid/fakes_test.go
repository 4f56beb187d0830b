package raid

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"raidtrack/core/database"
	"raidtrack/core/reconcile"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewStore(db)
}

type fakeDestinations struct {
	mu     sync.Mutex
	err    error
	opened []string
}

func (f *fakeDestinations) Open(ctx context.Context, scope, channelID string) (Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, channelID)
	if f.err != nil {
		return Destination{}, f.err
	}
	return Destination{Scope: scope, ChannelID: channelID}, nil
}

// fakeAnnouncements keeps messages in memory; deleting one simulates a
// moderator removing it.
type fakeAnnouncements struct {
	mu       sync.Mutex
	messages map[string]Announcement
	seq      int
	creates  int
	edits     int
	editErr   error
	createErr error
	lastDest  Destination
}

func newFakeAnnouncements() *fakeAnnouncements {
	return &fakeAnnouncements{messages: make(map[string]Announcement)}
}

func (f *fakeAnnouncements) Create(ctx context.Context, dest Destination, a Announcement) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	id := fmt.Sprintf("msg-%d", f.seq)
	f.messages[id] = a
	f.lastDest = dest
	return id, nil
}

func (f *fakeAnnouncements) Edit(ctx context.Context, dest Destination, id string, a Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits++
	if f.editErr != nil {
		return f.editErr
	}
	if _, ok := f.messages[id]; !ok {
		return fmt.Errorf("unknown message %s: %w", id, reconcile.ErrNotFound)
	}
	f.messages[id] = a
	f.lastDest = dest
	return nil
}

func (f *fakeAnnouncements) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, id)
}

func (f *fakeAnnouncements) get(id string) (Announcement, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.messages[id]
	return a, ok
}

type fakeEntries struct {
	mu        sync.Mutex
	entries   map[string]ScheduledEntry
	seq       int
	creates   int
	edits     int
	createErr error
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{entries: make(map[string]ScheduledEntry)}
}

func (f *fakeEntries) Create(ctx context.Context, scope string, e ScheduledEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	id := fmt.Sprintf("evt-%d", f.seq)
	f.entries[id] = e
	return id, nil
}

func (f *fakeEntries) Edit(ctx context.Context, scope, id string, e ScheduledEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits++
	if _, ok := f.entries[id]; !ok {
		return reconcile.ErrNotFound
	}
	f.entries[id] = e
	return nil
}

func (f *fakeEntries) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
}

type fakeMembers map[string]string

func (f fakeMembers) DisplayNames(ctx context.Context, scope string, userIDs []string) map[string]string {
	out := make(map[string]string)
	for _, id := range userIDs {
		if name, ok := f[id]; ok {
			out[id] = name
		}
	}
	return out
}

type reconcilerFixture struct {
	reconciler    *Reconciler
	store         *GormStore
	destinations  *fakeDestinations
	announcements *fakeAnnouncements
	entries       *fakeEntries
}

var testNow = time.Unix(500, 0)

func testConfig() Config {
	return Config{
		CreateEvents:           true,
		EventLeewaySeconds:     300,
		DefaultDurationSeconds: 10800,
		EventLocation:          "In-game (WoW)",
		ChannelFallback:        "chan-fallback",
		ChannelHeroic:          "chan-heroic",
	}
}

func newReconcilerFixture(t *testing.T, cfg Config) *reconcilerFixture {
	t.Helper()
	f := &reconcilerFixture{
		store:         setupStore(t),
		destinations:  &fakeDestinations{},
		announcements: newFakeAnnouncements(),
		entries:       newFakeEntries(),
	}
	f.reconciler = NewReconciler(Deps{
		Store:         f.store,
		Destinations:  f.destinations,
		Announcements: f.announcements,
		Entries:       f.entries,
		Members:       fakeMembers{"u1": "Thrall"},
		Renderer:      EmbedRenderer{},
	}, cfg, zap.NewNop())
	f.reconciler.now = func() time.Time { return testNow }
	return f
}
