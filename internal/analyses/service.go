package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"careermatch-backend/internal/history"
	"careermatch-backend/internal/llm"
	"careermatch-backend/internal/shared/metrics"
	"careermatch-backend/internal/shared/telemetry"
)

// runState tracks one orchestration run through its lifecycle.
type runState int

const (
	stateIdle runState = iota
	stateReady
	stateAnalyzing
	stateDisplayed
)

func (s runState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateReady:
		return "ready"
	case stateAnalyzing:
		return "analyzing"
	case stateDisplayed:
		return "displayed"
	default:
		return "unknown"
	}
}

// Service orchestrates one analysis run: validation, the comprehensive LLM
// call, the two secondary calls, normalization, and the single history save.
type Service struct {
	client llm.Client
	store  history.Store
}

// NewService creates a Service.
func NewService(client llm.Client, store history.Store) *Service {
	return &Service{client: client, store: store}
}

// run is the per-request state machine. saved is the one-shot guard: tied to
// this run, it makes a second save impossible by construction.
type run struct {
	id      string
	state   runState
	saved   bool
	userKey string
	input   RunInput
}

func (r *run) transition(next runState) {
	telemetry.Info("analysis.state", map[string]any{
		"run_id": r.id,
		"from":   r.state.String(),
		"to":     next.String(),
	})
	r.state = next
}

// Run executes one full analysis. Validation and parse errors surface;
// transport failure of the comprehensive call degrades to the default
// result. Exactly one history record is appended on success unless
// opts.SkipSave is set.
func (s *Service) Run(ctx context.Context, userKey string, input RunInput, opts RunOptions) (Report, error) {
	started := time.Now()
	r := &run{id: uuid.NewString(), state: stateIdle, userKey: userKey, input: input}

	if err := validateInput(input); err != nil {
		metrics.IncAnalysisFailed()
		return Report{}, err
	}
	r.transition(stateReady)

	r.transition(stateAnalyzing)
	metrics.IncAnalysisStarted()

	result, degraded, err := s.comprehensive(ctx, r)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Report{}, err
	}

	report := Report{
		RunID:    r.id,
		Result:   result,
		Degraded: degraded,
	}

	s.secondary(ctx, r, &report)
	r.transition(stateDisplayed)

	if !opts.SkipSave {
		report.HistoryID = s.saveOnce(ctx, r, report)
	}

	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	if report.Degraded {
		metrics.IncAnalysisDegraded()
	}
	metrics.IncAnalysisCompleted()
	return report, nil
}

// Replay re-runs the orchestration from a stored record's inputs without
// appending another history record.
func (s *Service) Replay(ctx context.Context, userKey, recordID string) (Report, error) {
	rec, err := s.store.GetByID(ctx, userKey, recordID)
	if err != nil {
		return Report{}, err
	}
	input := RunInput{
		ResumeText:     rec.ResumeText,
		JobDescription: rec.JobDescription,
		JobTitle:       rec.JobTitle,
	}
	return s.Run(ctx, userKey, input, RunOptions{SkipSave: true})
}

func validateInput(input RunInput) error {
	if len(strings.TrimSpace(input.ResumeText)) < MinInputLength {
		return ErrResumeTooShort
	}
	if len(strings.TrimSpace(input.JobDescription)) < MinInputLength {
		return ErrJobTooShort
	}
	return nil
}

// comprehensive issues the retried match-analysis call. The error policy is
// asymmetric on purpose: parse failures surface, transport failures are
// masked with the default result and flagged degraded.
func (s *Service) comprehensive(ctx context.Context, r *run) (AnalysisResult, bool, error) {
	// Defense in depth: the call site validates even though Run already did.
	if err := validateInput(r.input); err != nil {
		return AnalysisResult{}, false, err
	}

	client := newRetryingClient(s.client, r.id)
	prompt := llm.BuildAnalysisPrompt(r.input.ResumeText, r.input.JobDescription)

	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		telemetry.Warn("analysis.degraded", map[string]any{
			"run_id": r.id,
			"error":  err.Error(),
		})
		return DefaultAnalysisResult(), true, nil
	}

	payload, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return AnalysisResult{}, false, ErrParseAnalysis
	}
	var result AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return AnalysisResult{}, false, ErrParseAnalysis
	}

	normalizeResult(&result)
	return result, false, nil
}

// secondary fills in learning resources and salary trends. Both calls run
// concurrently, fire only after the comprehensive call resolved, and fall
// back silently to the fixed arrays on any failure. A degraded run skips the
// calls outright since transport is already known to be down.
func (s *Service) secondary(ctx context.Context, r *run, report *Report) {
	if report.Degraded {
		report.LearningResources = FallbackLearningResources()
		report.SalaryTrends = FallbackSalaryTrends()
		return
	}

	jobTitle := r.input.JobTitle
	missing := report.Result.SkillMatch.Missing

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		report.LearningResources = s.learningResources(ctx, r.id, missing)
	}()
	go func() {
		defer wg.Done()
		report.SalaryTrends = s.salaryTrends(ctx, r.id, jobTitle)
	}()
	wg.Wait()
}

func (s *Service) learningResources(ctx context.Context, runID string, missingSkills []string) []Recommendation {
	raw, err := s.client.Generate(ctx, llm.BuildRecommendationsPrompt(missingSkills))
	if err != nil {
		telemetry.Warn("analysis.recommendations_fallback", map[string]any{"run_id": runID, "error": err.Error()})
		return FallbackLearningResources()
	}
	payload, err := llm.ExtractJSONArray(raw)
	if err != nil {
		telemetry.Warn("analysis.recommendations_fallback", map[string]any{"run_id": runID, "error": err.Error()})
		return FallbackLearningResources()
	}
	var out []Recommendation
	if err := json.Unmarshal([]byte(payload), &out); err != nil || len(out) == 0 {
		telemetry.Warn("analysis.recommendations_fallback", map[string]any{"run_id": runID, "error": "decode failure"})
		return FallbackLearningResources()
	}
	return out
}

func (s *Service) salaryTrends(ctx context.Context, runID string, jobTitle string) []SalaryTrend {
	raw, err := s.client.Generate(ctx, llm.BuildSalaryTrendsPrompt(jobTitle))
	if err != nil {
		telemetry.Warn("analysis.salary_fallback", map[string]any{"run_id": runID, "error": err.Error()})
		return FallbackSalaryTrends()
	}
	payload, err := llm.ExtractJSONArray(raw)
	if err != nil {
		telemetry.Warn("analysis.salary_fallback", map[string]any{"run_id": runID, "error": err.Error()})
		return FallbackSalaryTrends()
	}
	var out []SalaryTrend
	if err := json.Unmarshal([]byte(payload), &out); err != nil || len(out) == 0 {
		telemetry.Warn("analysis.salary_fallback", map[string]any{"run_id": runID, "error": "decode failure"})
		return FallbackSalaryTrends()
	}
	return out
}

// saveOnce appends the single history record for this run. The guard on the
// run struct plus the store's duplicate check make a double save impossible.
func (s *Service) saveOnce(ctx context.Context, r *run, report Report) string {
	if r.saved || s.store == nil {
		return ""
	}
	r.saved = true

	rec := history.Record{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		MatchPercentage: report.Result.SkillMatch.OverallMatchPercentage,
		JobTitle:        r.input.JobTitle,
		ResumeText:      r.input.ResumeText,
		JobDescription:  r.input.JobDescription,
	}
	err := s.store.Append(ctx, r.userKey, rec)
	if err != nil && !errors.Is(err, history.ErrDuplicate) {
		// History is best-effort: a failed save never fails the analysis.
		telemetry.Warn("analysis.history_save_failed", map[string]any{
			"run_id": r.id,
			"error":  err.Error(),
		})
		return ""
	}
	telemetry.Info("analysis.history_saved", map[string]any{
		"run_id":     r.id,
		"history_id": rec.ID,
	})
	return rec.ID
}

// normalizeResult enforces the output invariants: percentages clamped to
// [0,100], matched/missing disjoint, nil arrays become empty.
func normalizeResult(result *AnalysisResult) {
	result.SkillMatch.OverallMatchPercentage = clampPercent(result.SkillMatch.OverallMatchPercentage)

	if result.SkillMatch.Matched == nil {
		result.SkillMatch.Matched = []string{}
	}
	if result.SkillMatch.Missing == nil {
		result.SkillMatch.Missing = []string{}
	}

	matched := make(map[string]struct{}, len(result.SkillMatch.Matched))
	for _, skill := range result.SkillMatch.Matched {
		matched[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}
	missing := result.SkillMatch.Missing[:0]
	for _, skill := range result.SkillMatch.Missing {
		if _, dup := matched[strings.ToLower(strings.TrimSpace(skill))]; !dup {
			missing = append(missing, skill)
		}
	}
	result.SkillMatch.Missing = missing

	for i := range result.SkillGapData {
		result.SkillGapData[i].Current = clampPercent(result.SkillGapData[i].Current)
		result.SkillGapData[i].Required = clampPercent(result.SkillGapData[i].Required)
	}
	for i := range result.PersonalityFit {
		result.PersonalityFit[i].MatchScore = clampPercent(result.PersonalityFit[i].MatchScore)
	}

	if result.SkillGapData == nil {
		result.SkillGapData = []SkillGap{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []Recommendation{}
	}
	if result.IndustryDemand == nil {
		result.IndustryDemand = []string{}
	}
	if result.PersonalityFit == nil {
		result.PersonalityFit = []PersonalityFit{}
	}
	if result.CareerPathSuggestions == nil {
		result.CareerPathSuggestions = []string{}
	}
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Weaknesses == nil {
		result.Weaknesses = []string{}
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
