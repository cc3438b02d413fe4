package store

import (
	"context"
	"errors"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a user by lowercase-normalized email. Used
	// during login and duplicate-email checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates name, email and bio, and bumps updated_at.
	// Returns ErrAlreadyExists when the new email collides with another
	// account.
	UpdateProfile(ctx context.Context, userID, name, email, bio string) error
}

type Tasks interface {
	// GetTask returns a task by id regardless of owner. Ownership policy
	// lives in the service layer, which turns mismatches into not-found.
	GetTask(ctx context.Context, id string) (domain.Task, error)

	// ListTasks returns the owner's tasks in creation order, optionally
	// narrowed by the filter.
	ListTasks(ctx context.Context, ownerID string, f TaskFilter) ([]domain.Task, error)

	// CreateTask inserts a new task (id is ULID, owner fixed for life).
	CreateTask(ctx context.Context, t domain.Task) error

	// UpdateTask rewrites the task's mutable fields and bumps updated_at.
	// The owner column is never part of the update.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes a task by id. Returns ErrNotFound when no row was
	// deleted.
	DeleteTask(ctx context.Context, id string) error

	// CountTasksByStatus returns per-status counts for the owner's tasks.
	CountTasksByStatus(ctx context.Context, ownerID string) (map[domain.Status]int, error)

	// CountTasksByPriority returns per-priority counts for the owner's tasks.
	CountTasksByPriority(ctx context.Context, ownerID string) (map[domain.Priority]int, error)
}

// TaskFilter narrows a task listing. Zero values mean "no filter". Status
// and Priority are validated by the service before they reach the store.
type TaskFilter struct {
	Status   domain.Status
	Priority domain.Priority
	// Search is matched case-insensitively as a substring of title and
	// description.
	Search string
}
