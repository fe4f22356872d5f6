package history

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore implements Store on Postgres. The table is append-only; inserts
// are idempotent on ID so a duplicate save cannot create a second row.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore creates a PGStore.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

// ListByUser returns the user's records newest-first.
func (s *PGStore) ListByUser(ctx context.Context, userKey string) ([]Record, error) {
	const query = `
SELECT id, created_at, match_percentage, job_title, resume_text, job_description
FROM history_records
WHERE user_key = $1
ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetByID returns a single record owned by the user.
func (s *PGStore) GetByID(ctx context.Context, userKey, id string) (Record, error) {
	const query = `
SELECT id, created_at, match_percentage, job_title, resume_text, job_description
FROM history_records
WHERE user_key = $1 AND id = $2
LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userKey, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Append inserts one record. A conflicting ID is a no-op reported as
// ErrDuplicate.
func (s *PGStore) Append(ctx context.Context, userKey string, rec Record) error {
	const query = `
INSERT INTO history_records (id, user_key, created_at, match_percentage, job_title, resume_text, job_description)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query,
		rec.ID,
		userKey,
		rec.CreatedAt,
		rec.MatchPercentage,
		nullable(rec.JobTitle),
		nullable(rec.ResumeText),
		nullable(rec.JobDescription),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicate
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var jobTitle, resumeText, jobDescription sql.NullString
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.MatchPercentage, &jobTitle, &resumeText, &jobDescription); err != nil {
		return Record{}, err
	}
	rec.JobTitle = jobTitle.String
	rec.ResumeText = resumeText.String
	rec.JobDescription = jobDescription.String
	return rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Store = (*PGStore)(nil)
