package jobfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// focusWindowChars is the slice taken from the first job-section keyword.
	focusWindowChars = 4000

	// maxDescriptionChars caps the description when no keyword anchors it.
	maxDescriptionChars = 5000
)

var jobSectionRe = regexp.MustCompile(`(?i)(job description|requirements|responsibilities)`)

// Fetcher retrieves job postings through a CORS relay and reduces them to a
// plain-text description.
type Fetcher struct {
	client   *http.Client
	relayURL string
}

// New builds a Fetcher. relayURL is the relay prefix the target URL is
// appended to, query-escaped.
func New(relayURL string) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: 20 * time.Second},
		relayURL: relayURL,
	}
}

// Fetch downloads the posting at jobURL and returns the focused description
// text. There is a single attempt; failures map to caller-facing messages.
func (f *Fetcher) Fetch(ctx context.Context, jobURL string) (string, error) {
	if _, err := url.ParseRequestURI(jobURL); err != nil {
		return "", fmt.Errorf("invalid job URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.relayURL+url.QueryEscape(jobURL), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch job posting: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("Access denied by the job site; paste the job description manually")
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("job posting not found; it may have been removed")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("job site returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read job posting: %w", err)
	}

	text, err := reduceHTML(body)
	if err != nil {
		return "", fmt.Errorf("parse job posting: %w", err)
	}
	return focusDescription(text), nil
}

// reduceHTML strips scripts and styles, prefers the content-bearing container
// when one exists, and collapses whitespace.
func reduceHTML(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	sel := doc.Find("main, article, .job-description, #job-description").First()
	if sel.Length() == 0 {
		sel = doc.Selection
	}

	return strings.Join(strings.Fields(sel.Text()), " "), nil
}

// focusDescription windows the text around the first job-section keyword, or
// truncates when the page has no recognizable section heading.
func focusDescription(text string) string {
	if loc := jobSectionRe.FindStringIndex(text); loc != nil {
		end := loc[0] + focusWindowChars
		if end > len(text) {
			end = len(text)
		}
		return text[loc[0]:end]
	}
	if len(text) > maxDescriptionChars {
		return text[:maxDescriptionChars] + "…"
	}
	return text
}
