package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateUpload_RejectsUnknownType(t *testing.T) {
	err := ValidateUpload("image/png", 1024)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValidateUpload_RejectsOversized(t *testing.T) {
	err := ValidateUpload("application/pdf", MaxFileSizeBytes+1)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateUpload_AcceptsBoundarySize(t *testing.T) {
	if err := ValidateUpload("text/plain", MaxFileSizeBytes); err != nil {
		t.Fatalf("expected boundary size to pass, got %v", err)
	}
}

func TestValidateUpload_NormalizesParameters(t *testing.T) {
	if err := ValidateUpload("Text/Plain; charset=utf-8", 10); err != nil {
		t.Fatalf("expected parameterized mime to pass, got %v", err)
	}
}

func TestExtract_PlainTextVerbatim(t *testing.T) {
	body := strings.Repeat("Senior Go engineer with distributed systems experience. ", 3)
	got, err := Extract(context.Background(), []byte(body), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != body {
		t.Fatalf("expected verbatim text, got %q", got)
	}
}

func TestExtract_ShortTextGetsFallback(t *testing.T) {
	got, err := Extract(context.Background(), []byte("too short"), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got == "too short" {
		t.Fatal("expected fallback text for sub-floor input")
	}
	if !strings.Contains(got, "paste the resume content manually") {
		t.Fatalf("unexpected fallback text: %q", got)
	}
}

func TestExtract_DocPlaceholderNamesFile(t *testing.T) {
	got, err := Extract(context.Background(), []byte("garbage bytes that are long enough to clear validation"), "application/msword", "legacy.doc")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "legacy.doc") {
		t.Fatalf("expected placeholder to name the file, got %q", got)
	}
}

func TestExtract_MalformedPDFDowngrades(t *testing.T) {
	got, err := Extract(context.Background(), []byte("%PDF-1.4 not really a pdf"), "application/pdf", "broken.pdf")
	if err != nil {
		t.Fatalf("expected no error for malformed pdf, got %v", err)
	}
	if got == "" {
		t.Fatal("expected placeholder or fallback text")
	}
}

func TestExtract_PDFParenHeuristic(t *testing.T) {
	var b strings.Builder
	b.WriteString("%PDF-1.4\nstream\nBT ")
	for i := 0; i < 20; i++ {
		b.WriteString("(Experienced backend engineer) Tj ")
	}
	b.WriteString("ET\nendstream")

	got := pdfParenPass(b.String())
	if len(got) < pdfHeuristicMin {
		t.Fatalf("expected paren pass to yield text, got %d chars", len(got))
	}
	if !strings.Contains(got, "Experienced backend engineer") {
		t.Fatalf("unexpected yield: %q", got)
	}
}

func TestExtract_PDFArrayHeuristic(t *testing.T) {
	raw := strings.Repeat("[(Led a team of)-250(five engineers)] TJ\n", 10)
	got := pdfArrayPass(raw)
	if !strings.Contains(got, "Led a team of") || !strings.Contains(got, "five engineers") {
		t.Fatalf("expected array fragments, got %q", got)
	}
}

func TestExtract_PDFPrintablePassDropsBinary(t *testing.T) {
	raw := "\x00\x01Built scalable APIs\x02\xff in Go and Postgres\x00"
	got := pdfPrintablePass(raw)
	if !strings.Contains(got, "Built scalable APIs") || !strings.Contains(got, "in Go and Postgres") {
		t.Fatalf("expected printable runs, got %q", got)
	}
	if strings.ContainsRune(got, 0) {
		t.Fatal("expected binary bytes stripped")
	}
}

func TestExtract_ValidationErrorsSurface(t *testing.T) {
	if _, err := Extract(context.Background(), []byte("x"), "application/zip", "a.zip"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestStripXML_ParagraphBreaks(t *testing.T) {
	raw := `<w:document><w:p><w:r><w:t>First line</w:t></w:r></w:p><w:p><w:r><w:t>Second line</w:t></w:r></w:p></w:document>`
	got := stripXML(raw)
	if got != "First line\nSecond line" {
		t.Fatalf("unexpected strip result: %q", got)
	}
}
