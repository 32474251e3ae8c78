// Package storage defines the document-store contract the task repository
// is written against, with a Firestore implementation for production and a
// locked in-memory implementation for tests and credential-less runs.
package storage

import (
	"context"

	"github.com/AnishKajan/Taskmanager-Project/model"
)

// TaskStore is the capability set the repository needs from a document
// store: lookup by id, whole-document writes, per-document atomic
// conditional mutations, and the two visibility queries.
//
// UpdateTask and DeleteTask load the document, run check against its
// current state, and apply the mutation as one indivisible operation with
// respect to other writers of the same document. A non-nil error from
// check aborts the write and is returned unchanged. Missing documents
// yield apperr.ErrNotFound; transient failures wrap
// apperr.ErrStorageUnavailable.
type TaskStore interface {
	GetTask(ctx context.Context, id string) (*model.Task, error)
	PutTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, id string, check func(*model.Task) error, apply func(*model.Task)) (*model.Task, error)
	DeleteTask(ctx context.Context, id string, check func(*model.Task) error) error
	TasksByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	TasksByCollaborator(ctx context.Context, email string) ([]model.Task, error)
}

// UserStore holds account documents. Emails are stored lowercase and act
// as the unique lookup key.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	PutUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, id string, apply func(*model.User)) (*model.User, error)
	ListUsersByVisibility(ctx context.Context, visibility string) ([]model.User, error)
}

// Store is the full handle the server constructs at startup and injects
// into request-handling code.
type Store interface {
	TaskStore
	UserStore
	Close() error
}
