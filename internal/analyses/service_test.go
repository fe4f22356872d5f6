package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"careermatch-backend/internal/history"
)

const (
	testResume = "Experienced backend engineer with eight years of Go, Postgres and Kubernetes work."
	testJob    = "We are hiring a senior Go engineer to build distributed data pipelines on AWS."
)

// scriptedClient routes each prompt kind to a canned reply and counts calls.
type scriptedClient struct {
	mu sync.Mutex

	analysisReply  string
	analysisErr    error
	analysisErrSeq []error

	secondaryReply string
	secondaryErr   error

	analysisCalls  int
	secondaryCalls int
}

func (c *scriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.Contains(prompt, "compatibility analysis") {
		c.analysisCalls++
		if len(c.analysisErrSeq) > 0 {
			err := c.analysisErrSeq[0]
			c.analysisErrSeq = c.analysisErrSeq[1:]
			if err != nil {
				return "", err
			}
			return c.analysisReply, nil
		}
		if c.analysisErr != nil {
			return "", c.analysisErr
		}
		return c.analysisReply, nil
	}

	c.secondaryCalls++
	if c.secondaryErr != nil {
		return "", c.secondaryErr
	}
	return c.secondaryReply, nil
}

// memStore is a minimal in-memory history.Store for orchestrator tests.
type memStore struct {
	mu      sync.Mutex
	records map[string][]history.Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string][]history.Record)}
}

func (m *memStore) ListByUser(ctx context.Context, userKey string) ([]history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]history.Record(nil), m.records[userKey]...), nil
}

func (m *memStore) GetByID(ctx context.Context, userKey, id string) (history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records[userKey] {
		if rec.ID == id {
			return rec, nil
		}
	}
	return history.Record{}, history.ErrNotFound
}

func (m *memStore) Append(ctx context.Context, userKey string, rec history.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records[userKey] {
		if existing.ID == rec.ID {
			return history.ErrDuplicate
		}
	}
	m.records[userKey] = append(m.records[userKey], rec)
	return nil
}

func validAnalysisReply() string {
	return `Here is your analysis:
{
  "skillMatch": {"matched": ["Go", "Postgres"], "missing": ["Terraform", "go"], "overallMatchPercentage": 120},
  "skillGapData": [{"skill": "Terraform", "current": -5, "required": 90}],
  "personalityFit": [{"trait": "Ownership", "matchScore": 105, "jobRequirement": "delivery"}],
  "competitiveAdvantage": "Deep Go experience"
}`
}

func validSecondaryReply() string {
	return `[{"title": "Terraform Basics", "type": "course", "provider": "HashiCorp", "duration": "2 weeks", "priority": "high", "url": "https://example.com", "role": "Mid Level", "median": 100000, "growth": "+5%", "demand": "high"}]`
}

func TestRun_ValidationShortCircuits(t *testing.T) {
	client := &scriptedClient{}
	svc := NewService(client, newMemStore())

	_, err := svc.Run(context.Background(), "u", RunInput{ResumeText: "short", JobDescription: testJob}, RunOptions{})
	if !errors.Is(err, ErrResumeTooShort) {
		t.Fatalf("expected ErrResumeTooShort, got %v", err)
	}
	_, err = svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: "short"}, RunOptions{})
	if !errors.Is(err, ErrJobTooShort) {
		t.Fatalf("expected ErrJobTooShort, got %v", err)
	}
	if client.analysisCalls != 0 {
		t.Fatalf("expected no LLM calls on validation failure, got %d", client.analysisCalls)
	}
}

func TestRun_SuccessNormalizesAndSavesOnce(t *testing.T) {
	client := &scriptedClient{
		analysisReply:  validAnalysisReply(),
		secondaryReply: validSecondaryReply(),
	}
	store := newMemStore()
	svc := NewService(client, store)

	report, err := svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: testJob, JobTitle: "Go Engineer"}, RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Result.SkillMatch.OverallMatchPercentage != 100 {
		t.Fatalf("expected clamped percentage 100, got %d", report.Result.SkillMatch.OverallMatchPercentage)
	}
	for _, missing := range report.Result.SkillMatch.Missing {
		for _, matched := range report.Result.SkillMatch.Matched {
			if strings.EqualFold(missing, matched) {
				t.Fatalf("matched and missing overlap on %q", missing)
			}
		}
	}
	if report.Result.SkillGapData[0].Current != 0 {
		t.Fatalf("expected negative gap clamped to 0, got %d", report.Result.SkillGapData[0].Current)
	}
	if report.Result.Recommendations == nil || report.Result.Strengths == nil {
		t.Fatal("expected nil arrays normalized to empty")
	}
	if report.Degraded {
		t.Fatal("expected non-degraded report")
	}
	if client.secondaryCalls != 2 {
		t.Fatalf("expected 2 secondary calls, got %d", client.secondaryCalls)
	}

	records, _ := store.ListByUser(context.Background(), "u")
	if len(records) != 1 {
		t.Fatalf("expected exactly one history record, got %d", len(records))
	}
	if records[0].MatchPercentage != 100 || records[0].JobTitle != "Go Engineer" {
		t.Fatalf("unexpected record %+v", records[0])
	}
	if report.HistoryID != records[0].ID {
		t.Fatalf("expected report to reference saved record")
	}
}

func TestRun_ParseErrorSurfacesAndSuppressesSecondary(t *testing.T) {
	client := &scriptedClient{analysisReply: "I cannot produce JSON right now."}
	store := newMemStore()
	svc := NewService(client, store)

	_, err := svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: testJob}, RunOptions{})
	if !errors.Is(err, ErrParseAnalysis) {
		t.Fatalf("expected ErrParseAnalysis, got %v", err)
	}
	if client.secondaryCalls != 0 {
		t.Fatalf("expected secondary calls suppressed, got %d", client.secondaryCalls)
	}
	records, _ := store.ListByUser(context.Background(), "u")
	if len(records) != 0 {
		t.Fatalf("expected no history record on failure, got %d", len(records))
	}
}

func TestRun_TransportFailureDegrades(t *testing.T) {
	client := &scriptedClient{analysisErr: fmt.Errorf("gemini status 400: bad request")}
	store := newMemStore()
	svc := NewService(client, store)

	report, err := svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: testJob}, RunOptions{})
	if err != nil {
		t.Fatalf("expected masked transport failure, got %v", err)
	}
	if !report.Degraded {
		t.Fatal("expected degraded flag")
	}
	if report.Result.SkillMatch.OverallMatchPercentage != DefaultAnalysisResult().SkillMatch.OverallMatchPercentage {
		t.Fatal("expected default analysis result")
	}
	if len(report.LearningResources) != 3 || len(report.SalaryTrends) != 3 {
		t.Fatalf("expected fallback arrays of length 3, got %d and %d", len(report.LearningResources), len(report.SalaryTrends))
	}
	if client.secondaryCalls != 0 {
		t.Fatalf("expected no secondary calls on degraded run, got %d", client.secondaryCalls)
	}
}

func TestRun_RetriesComprehensiveOnRetryableErrors(t *testing.T) {
	client := &scriptedClient{
		analysisReply: validAnalysisReply(),
		analysisErrSeq: []error{
			fmt.Errorf("gemini status 500: internal"),
			fmt.Errorf("connection reset by peer"),
			nil,
		},
		secondaryReply: validSecondaryReply(),
	}
	svc := NewService(client, newMemStore())

	report, err := svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: testJob}, RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Degraded {
		t.Fatal("expected retries to recover, not degrade")
	}
	if client.analysisCalls != 3 {
		t.Fatalf("expected 3 comprehensive attempts, got %d", client.analysisCalls)
	}
}

func TestRun_SecondaryFailuresFallBackSilently(t *testing.T) {
	client := &scriptedClient{
		analysisReply: validAnalysisReply(),
		secondaryErr:  fmt.Errorf("gemini status 400: bad request"),
	}
	svc := NewService(client, newMemStore())

	report, err := svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: testJob}, RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.LearningResources) != 3 {
		t.Fatalf("expected fallback learning resources of length 3, got %d", len(report.LearningResources))
	}
	if len(report.SalaryTrends) != 3 {
		t.Fatalf("expected fallback salary trends of length 3, got %d", len(report.SalaryTrends))
	}
}

func TestReplay_DoesNotSaveAgain(t *testing.T) {
	client := &scriptedClient{
		analysisReply:  validAnalysisReply(),
		secondaryReply: validSecondaryReply(),
	}
	store := newMemStore()
	svc := NewService(client, store)

	report, err := svc.Run(context.Background(), "u", RunInput{ResumeText: testResume, JobDescription: testJob, JobTitle: "Go Engineer"}, RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	replayed, err := svc.Replay(context.Background(), "u", report.HistoryID)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replayed.HistoryID != "" {
		t.Fatal("expected replay to skip saving")
	}

	records, _ := store.ListByUser(context.Background(), "u")
	if len(records) != 1 {
		t.Fatalf("expected history unchanged after replay, got %d records", len(records))
	}
}

func TestReplay_UnknownRecord(t *testing.T) {
	svc := NewService(&scriptedClient{}, newMemStore())
	if _, err := svc.Replay(context.Background(), "u", "missing"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
