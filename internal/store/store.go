// Package store defines the persistence interface the services are built
// against, with a Postgres implementation for production and an in-memory
// implementation for tests and demo runs.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

// Sentinel errors returned by Store implementations.
var (
	// ErrNotFound is returned when a record does not exist for the given
	// owner. A record owned by someone else is reported identically.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("store: username or email already exists")
)

// TodoPatch carries the mutable fields of a todo for a partial update.
// Nil fields are left unchanged.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Store is the persistence interface injected into the handlers.
// Every todo operation is scoped by the owner id at the store level.
type Store interface {
	// InsertUser persists a new user. Fails with ErrDuplicateUser if the
	// username or email is already registered.
	InsertUser(ctx context.Context, user *models.User) error

	// FindUserByEmail returns the user with the given email, or ErrNotFound.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByOwner returns all todos owned by owner, most recent first.
	FindByOwner(ctx context.Context, owner uuid.UUID) ([]models.Todo, error)

	// Insert persists a new todo.
	Insert(ctx context.Context, todo *models.Todo) error

	// UpdateByID applies the non-nil patch fields to the todo with the given
	// id owned by owner and returns the updated record, or ErrNotFound.
	UpdateByID(ctx context.Context, owner, id uuid.UUID, patch TodoPatch) (*models.Todo, error)

	// DeleteByID removes the todo with the given id owned by owner,
	// or returns ErrNotFound.
	DeleteByID(ctx context.Context, owner, id uuid.UUID) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
