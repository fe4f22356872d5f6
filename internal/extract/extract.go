package extract

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	mimePDF   = "application/pdf"
	mimeDOC   = "application/msword"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePlain = "text/plain"

	// MaxFileSizeBytes is the upload ceiling: 5 MiB.
	MaxFileSizeBytes = 5 * 1024 * 1024

	// minUsableLength is the floor under which extracted text is replaced
	// by the generic fallback sentence.
	minUsableLength = 50
)

var (
	ErrUnsupportedType = errors.New("unsupported file type: only PDF, DOC, DOCX and plain text resumes are accepted")
	ErrFileTooLarge    = errors.New("file too large: resumes must be 5 MB or smaller")
)

// ValidateUpload checks the declared media type and size against the allow-list.
// These are the only extraction failures surfaced to the caller.
func ValidateUpload(mimeType string, sizeBytes int64) error {
	switch normalizeMimeType(mimeType) {
	case mimePDF, mimeDOC, mimeDOCX, mimePlain:
	default:
		return ErrUnsupportedType
	}
	if sizeBytes > MaxFileSizeBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Extract produces best-effort plain text for an accepted upload. Extraction
// problems past validation never surface as errors: they downgrade to a
// templated placeholder, and anything under the usable floor is replaced by a
// generic fallback sentence.
func Extract(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateUpload(mimeType, int64(len(data))); err != nil {
		return "", err
	}

	text := extractByType(data, normalizeMimeType(mimeType), fileName)
	if len(strings.TrimSpace(text)) < minUsableLength {
		return genericFallback(), nil
	}
	return text, nil
}

func extractByType(data []byte, mimeType string, fileName string) (text string) {
	// Heuristic extractors can misbehave on malformed bytes; a panic here
	// must downgrade to the placeholder, not fail the upload.
	defer func() {
		if r := recover(); r != nil {
			text = placeholderText(fileName)
		}
	}()

	switch mimeType {
	case mimePlain:
		return string(data)
	case mimePDF:
		if out, err := extractPDF(data); err == nil {
			return out
		}
		return placeholderText(fileName)
	case mimeDOCX:
		if out, err := extractDOCX(data); err == nil && strings.TrimSpace(out) != "" {
			return out
		}
		return placeholderText(fileName)
	default:
		return placeholderText(fileName)
	}
}

func placeholderText(fileName string) string {
	return fmt.Sprintf("Resume document %q was uploaded, but its contents could not be extracted automatically. The candidate should paste the resume text manually so the full content can be analyzed.", fileName)
}

func genericFallback() string {
	return "Professional resume document uploaded. The extracted text was too short to analyze reliably; please paste the resume content manually for a complete report."
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

// stripXML collects character data, inserting newlines at paragraph and break
// boundaries the way Word documents delimit them.
func stripXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
