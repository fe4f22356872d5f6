package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"careermatch-backend/internal/shared/util"
)

const fileWriteRetries = 3

// FileStore keeps one JSON document per user key on the local filesystem.
// Writes are read-modify-write of the whole document, guarded by a version
// counter so a concurrent writer (another process on the same directory)
// cannot silently drop a record.
type FileStore struct {
	dir       string
	keyPrefix string
	mu        sync.Mutex
}

type userDocument struct {
	Version int      `json:"version"`
	Records []Record `json:"records"`
}

// NewFileStore creates a FileStore rooted at dir. keyPrefix namespaces the
// per-user files.
func NewFileStore(dir, keyPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{dir: dir, keyPrefix: keyPrefix}, nil
}

func (s *FileStore) pathFor(userKey string) string {
	return filepath.Join(s.dir, s.keyPrefix+util.HashUserKey(userKey)+".json")
}

// ListByUser returns the user's records newest-first.
func (s *FileStore) ListByUser(ctx context.Context, userKey string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(userKey)
	if err != nil {
		return nil, err
	}
	records := append([]Record(nil), doc.Records...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// GetByID returns a single record owned by the user.
func (s *FileStore) GetByID(ctx context.Context, userKey, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(userKey)
	if err != nil {
		return Record{}, err
	}
	for _, rec := range doc.Records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// Append adds one record under a version check, retrying a bounded number of
// times when another writer bumped the version in between.
func (s *FileStore) Append(ctx context.Context, userKey string, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < fileWriteRetries; attempt++ {
		doc, err := s.read(userKey)
		if err != nil {
			return err
		}
		for _, existing := range doc.Records {
			if existing.ID == rec.ID {
				return ErrDuplicate
			}
		}

		next := userDocument{
			Version: doc.Version + 1,
			Records: append(doc.Records, rec),
		}
		err = s.writeIfVersion(userKey, next, doc.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return ErrConflict
}

func (s *FileStore) read(userKey string) (userDocument, error) {
	raw, err := os.ReadFile(s.pathFor(userKey))
	if errors.Is(err, fs.ErrNotExist) {
		return userDocument{}, nil
	}
	if err != nil {
		return userDocument{}, fmt.Errorf("read history: %w", err)
	}
	var doc userDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return userDocument{}, fmt.Errorf("decode history: %w", err)
	}
	return doc, nil
}

// writeIfVersion re-reads the current version before committing and writes
// via temp-file rename so readers never observe a partial document.
func (s *FileStore) writeIfVersion(userKey string, doc userDocument, expectedVersion int) error {
	current, err := s.read(userKey)
	if err != nil {
		return err
	}
	if current.Version != expectedVersion {
		return ErrConflict
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	path := s.pathFor(userKey)
	tmp, err := os.CreateTemp(s.dir, ".history-*")
	if err != nil {
		return fmt.Errorf("temp history file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
