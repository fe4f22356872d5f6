package history

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no record exists for the user with that ID.
	ErrNotFound = errors.New("history record not found")

	// ErrDuplicate indicates a record with the same ID was already appended.
	ErrDuplicate = errors.New("history record already saved")

	// ErrConflict indicates the underlying list changed between read and
	// write more times than the store was willing to retry.
	ErrConflict = errors.New("history store conflict")
)

// Store persists per-user analysis history. Records are append-only and
// never mutated.
type Store interface {
	// ListByUser returns the user's records newest-first.
	ListByUser(ctx context.Context, userKey string) ([]Record, error)

	// GetByID returns a single record owned by the user.
	GetByID(ctx context.Context, userKey, id string) (Record, error)

	// Append adds one record. Re-appending an existing ID returns
	// ErrDuplicate and leaves the list unchanged.
	Append(ctx context.Context, userKey string, rec Record) error
}
