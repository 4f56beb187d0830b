package reconcile

import (
	"context"
	"errors"
)

// Sync creates or edits an artifact, replacing it when the stored one is gone.
func Sync(ctx context.Context, artifact Artifact, currentID string) Result {
	result := Result{Name: artifact.Name(), PreviousID: currentID}

	if currentID != "" {
		err := artifact.Edit(ctx, currentID)
		if err == nil {
			result.Action = ActionEdited
			result.ID = currentID
			return result
		}
		if !errors.Is(err, ErrNotFound) {
			// The artifact may still exist; keep pointing at it.
			return result.fail(currentID, err)
		}
	}

	id, err := artifact.Create(ctx)
	if err != nil {
		return result.fail("", err)
	}

	result.ID = id
	result.Action = ActionCreated
	if currentID != "" {
		result.Action = ActionRecreated
	}
	return result
}

// Skip records an artifact that was deliberately left as is.
func Skip(name, currentID, reason string) Result {
	return Result{
		Name:       name,
		Action:     ActionSkipped,
		ID:         currentID,
		PreviousID: currentID,
		Reason:     reason,
	}
}

func (r Result) fail(id string, err error) Result {
	r.Action = ActionFailed
	r.ID = id
	r.err = err
	r.Error = err.Error()
	return r
}
