package documents

import (
	"context"
	"sync"
)

// Repo stores resume metadata. Resumes are session-scoped working state, so
// the only implementation is in-memory; durable traces live in history.
type Repo interface {
	Create(ctx context.Context, doc Resume) error
	GetCurrentByUser(ctx context.Context, userKey string) (Resume, error)
}

// MemoryRepo keeps each user's uploads in memory, newest last.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Resume)}
}

// Create appends an upload for the user.
func (r *MemoryRepo) Create(ctx context.Context, doc Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserKey] = append(r.data[doc.UserKey], doc)
	return nil
}

// GetCurrentByUser returns the most recent upload for the user.
func (r *MemoryRepo) GetCurrentByUser(ctx context.Context, userKey string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[userKey]
	if len(docs) == 0 {
		return Resume{}, ErrNotFound
	}
	return docs[len(docs)-1], nil
}

var _ Repo = (*MemoryRepo)(nil)
