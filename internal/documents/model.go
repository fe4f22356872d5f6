package documents

import "time"

// Resume is one uploaded resume document with its extracted text. The latest
// upload per user is the "current" resume.
type Resume struct {
	ID               string    `json:"id"`
	UserKey          string    `json:"-"`
	FileName         string    `json:"fileName"`
	MimeType         string    `json:"mimeType"`
	SizeBytes        int64     `json:"sizeBytes"`
	StorageKey       string    `json:"-"`
	ExtractedTextKey string    `json:"-"`
	ExtractedText    string    `json:"extractedText"`
	CreatedAt        time.Time `json:"uploadedAt"`
}
