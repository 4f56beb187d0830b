package reconcile

import "context"

// Artifact is one externally stored representation of a record.
type Artifact interface {
	// Name identifies the artifact kind in results and logs.
	Name() string
	// Create publishes a new artifact and returns its identifier.
	Create(ctx context.Context) (string, error)
	// Edit updates the artifact with the given identifier. It returns an
	// error wrapping ErrNotFound when the artifact no longer exists.
	Edit(ctx context.Context, id string) error
}

// CreateFunc publishes a new artifact.
type CreateFunc func(ctx context.Context) (string, error)

// EditFunc updates an existing artifact.
type EditFunc func(ctx context.Context, id string) error

type funcArtifact struct {
	name   string
	create CreateFunc
	edit   EditFunc
}

// NewArtifact builds an Artifact from plain functions.
func NewArtifact(name string, create CreateFunc, edit EditFunc) Artifact {
	return &funcArtifact{name: name, create: create, edit: edit}
}

func (a *funcArtifact) Name() string { return a.name }

func (a *funcArtifact) Create(ctx context.Context) (string, error) { return a.create(ctx) }

func (a *funcArtifact) Edit(ctx context.Context, id string) error { return a.edit(ctx, id) }
