package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeArtifact records calls and fails on demand.
type fakeArtifact struct {
	editErr   error
	createErr error
	nextID    string
	edits     []string
	creates   int
}

func (f *fakeArtifact) Name() string { return "announcement" }

func (f *fakeArtifact) Create(ctx context.Context) (string, error) {
	f.creates++
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextID, nil
}

func (f *fakeArtifact) Edit(ctx context.Context, id string) error {
	f.edits = append(f.edits, id)
	return f.editErr
}

func TestSync(t *testing.T) {
	ctx := context.Background()
	wrappedNotFound := fmt.Errorf("discord: unknown message: %w", ErrNotFound)

	tests := []struct {
		name        string
		artifact    *fakeArtifact
		currentID   string
		wantAction  ActionType
		wantID      string
		wantEdits   int
		wantCreates int
		wantErr     bool
	}{
		{"CreateWhenNoID", &fakeArtifact{nextID: "m1"}, "", ActionCreated, "m1", 0, 1, false},
		{"EditExisting", &fakeArtifact{nextID: "m2"}, "m1", ActionEdited, "m1", 1, 0, false},
		{"RecreateWhenGone", &fakeArtifact{editErr: wrappedNotFound, nextID: "m2"}, "m1", ActionRecreated, "m2", 1, 1, false},
		{"KeepIDOnTransientEditError", &fakeArtifact{editErr: assert.AnError, nextID: "m2"}, "m1", ActionFailed, "m1", 1, 0, true},
		{"ClearIDWhenRecreateFails", &fakeArtifact{editErr: ErrNotFound, createErr: assert.AnError}, "m1", ActionFailed, "", 1, 1, true},
		{"CreateFails", &fakeArtifact{createErr: assert.AnError}, "", ActionFailed, "", 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Sync(ctx, tt.artifact, tt.currentID)

			assert.Equal(t, "announcement", r.Name)
			assert.Equal(t, tt.wantAction, r.Action)
			assert.Equal(t, tt.wantID, r.ID)
			assert.Equal(t, tt.currentID, r.PreviousID)
			assert.Len(t, tt.artifact.edits, tt.wantEdits)
			assert.Equal(t, tt.wantCreates, tt.artifact.creates)
			if tt.wantErr {
				assert.ErrorIs(t, r.Err(), assert.AnError)
				assert.NotEmpty(t, r.Error)
			} else {
				assert.NoError(t, r.Err())
			}
		})
	}
}

func TestSync_Idempotent(t *testing.T) {
	ctx := context.Background()
	a := &fakeArtifact{nextID: "m1"}

	first := Sync(ctx, a, "")
	second := Sync(ctx, a, first.ID)

	assert.Equal(t, ActionCreated, first.Action)
	assert.Equal(t, ActionEdited, second.Action)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Changed())
	assert.Equal(t, 1, a.creates)
}

func TestNewArtifact(t *testing.T) {
	var edited string
	a := NewArtifact("event",
		func(ctx context.Context) (string, error) { return "e1", nil },
		func(ctx context.Context, id string) error { edited = id; return nil },
	)

	assert.Equal(t, "event", a.Name())
	assert.Equal(t, "e1", Sync(context.Background(), a, "").ID)
	assert.Equal(t, ActionEdited, Sync(context.Background(), a, "e0").Action)
	assert.Equal(t, "e0", edited)
}

func TestSkipAndSummarize(t *testing.T) {
	skipped := Skip("event", "e1", "event already started")
	assert.Equal(t, ActionSkipped, skipped.Action)
	assert.Equal(t, "e1", skipped.ID)
	assert.False(t, skipped.Changed())

	s := Summarize(
		Result{Action: ActionCreated},
		Result{Action: ActionEdited},
		Result{Action: ActionEdited},
		Result{Action: ActionRecreated},
		Result{Action: ActionFailed},
		skipped,
	)
	assert.Equal(t, Summary{Created: 1, Edited: 2, Recreated: 1, Failed: 1, Skipped: 1}, s)

	s.Merge(Summary{Created: 2})
	assert.Equal(t, 3, s.Created)
}
