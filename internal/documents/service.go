package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"careermatch-backend/internal/extract"
	"careermatch-backend/internal/shared/storage/object"
	"careermatch-backend/internal/shared/telemetry"
)

// Service handles resume uploads: validation, raw persistence, text
// extraction, and the extracted-text sidecar.
type Service struct {
	repo  Repo
	store object.ObjectStore
}

// NewService creates a documents Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{repo: repo, store: store}
}

// Upload validates and stores a resume, then extracts its text. The declared
// mime type and size are checked before any bytes are persisted.
func (s *Service) Upload(ctx context.Context, userKey, fileName, mimeType string, sizeBytes int64, r io.Reader) (Resume, error) {
	if strings.TrimSpace(fileName) == "" {
		return Resume{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if err := extract.ValidateUpload(mimeType, sizeBytes); err != nil {
		return Resume{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, extract.MaxFileSizeBytes+1))
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if err := extract.ValidateUpload(mimeType, int64(len(data))); err != nil {
		return Resume{}, err
	}

	storageKey, _, _, err := s.store.Save(ctx, userKey, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}

	text, err := extract.Extract(ctx, data, mimeType, fileName)
	if err != nil {
		return Resume{}, err
	}

	extractedKey := storageKey + ".extracted.txt"
	if _, err := s.store.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		// The sidecar is derived data; losing it is recoverable.
		telemetry.Warn("documents.sidecar_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
		extractedKey = ""
	}

	doc := Resume{
		ID:               uuid.NewString(),
		UserKey:          userKey,
		FileName:         fileName,
		MimeType:         mimeType,
		SizeBytes:        int64(len(data)),
		StorageKey:       storageKey,
		ExtractedTextKey: extractedKey,
		ExtractedText:    text,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return Resume{}, fmt.Errorf("save resume: %w", err)
	}
	return doc, nil
}

// Current returns the user's most recent resume.
func (s *Service) Current(ctx context.Context, userKey string) (Resume, error) {
	return s.repo.GetCurrentByUser(ctx, userKey)
}
