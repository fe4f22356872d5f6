package extract

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// pdfHeuristicMin is the minimum yield for a heuristic pass to be accepted.
const pdfHeuristicMin = 100

var (
	// (text) Tj-style string literals inside content streams.
	pdfParenToken = regexp.MustCompile(`\(((?:[^()\\]|\\.)+)\)`)

	// [(frag) kern (frag)] TJ arrays.
	pdfTextArray = regexp.MustCompile(`\[((?:[^\[\]])+)\]\s*TJ`)
)

// extractPDF tries a real parse first, then progressively cruder heuristic
// passes over the raw bytes. The first pass yielding at least pdfHeuristicMin
// characters wins.
func extractPDF(data []byte) (string, error) {
	if out, err := parsePDF(data); err == nil && len(strings.TrimSpace(out)) >= pdfHeuristicMin {
		return out, nil
	}

	raw := string(data)
	for _, pass := range []func(string) string{
		pdfParenPass,
		pdfArrayPass,
		pdfPrintablePass,
	} {
		if out := pass(raw); len(strings.TrimSpace(out)) >= pdfHeuristicMin {
			return out, nil
		}
	}
	return "", errNoExtractableText
}

func parsePDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pdfParenPass collects parenthesised string tokens from content streams.
func pdfParenPass(raw string) string {
	matches := pdfParenToken.FindAllStringSubmatch(raw, -1)
	var parts []string
	for _, m := range matches {
		token := unescapePDFString(m[1])
		if hasReadableRun(token) {
			parts = append(parts, token)
		}
	}
	return strings.Join(parts, " ")
}

// pdfArrayPass collects fragments from TJ show-text arrays.
func pdfArrayPass(raw string) string {
	matches := pdfTextArray.FindAllStringSubmatch(raw, -1)
	var parts []string
	for _, m := range matches {
		for _, frag := range pdfParenToken.FindAllStringSubmatch(m[1], -1) {
			token := unescapePDFString(frag[1])
			if hasReadableRun(token) {
				parts = append(parts, token)
			}
		}
	}
	return strings.Join(parts, " ")
}

// pdfPrintablePass keeps printable ASCII runs, dropping binary noise. It is
// the last resort and over-captures, so callers gate on length.
func pdfPrintablePass(raw string) string {
	var buf strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() >= 4 {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(run.String())
		}
		run.Reset()
	}
	for _, r := range raw {
		if r >= 32 && r < 127 {
			run.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return buf.String()
}

func unescapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return replacer.Replace(s)
}

// hasReadableRun rejects tokens that are kerning junk or glyph indices.
func hasReadableRun(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if letters >= 2 {
				return true
			}
		} else {
			letters = 0
		}
	}
	return false
}
