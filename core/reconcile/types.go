package reconcile

import "errors"

// ErrNotFound reports that an external artifact no longer exists.
// It is the only failure that makes Sync forget a stored identifier.
var ErrNotFound = errors.New("artifact not found")

// ActionType represents what Sync did to an artifact.
type ActionType string

const (
	// ActionCreated means no id was stored and a new artifact was published.
	ActionCreated ActionType = "created"
	// ActionEdited means the stored artifact was updated in place.
	ActionEdited ActionType = "edited"
	// ActionRecreated means the stored artifact was gone and got replaced.
	ActionRecreated ActionType = "recreated"
	// ActionFailed means the artifact could not be created or edited.
	ActionFailed ActionType = "failed"
	// ActionSkipped means the artifact was intentionally left untouched.
	ActionSkipped ActionType = "skipped"
)

// Result is the outcome of syncing one artifact.
type Result struct {
	// Name is the artifact kind.
	Name string `json:"name"`

	// Action is what happened.
	Action ActionType `json:"action"`

	// ID is the identifier to persist. It is empty when the artifact is
	// known not to exist.
	ID string `json:"id,omitempty"`

	// PreviousID is the identifier Sync was given.
	PreviousID string `json:"previous_id,omitempty"`

	// Reason explains a skip.
	Reason string `json:"reason,omitempty"`

	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`

	err error
}

// Err returns the failure behind an ActionFailed result.
func (r Result) Err() error {
	return r.err
}

// Changed reports whether the identifier to persist differs from the input.
func (r Result) Changed() bool {
	return r.ID != r.PreviousID
}

// Summary provides aggregate counts over many results.
type Summary struct {
	Created   int `json:"created"`
	Edited    int `json:"edited"`
	Recreated int `json:"recreated"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}
