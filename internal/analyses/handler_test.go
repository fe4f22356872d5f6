package analyses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userKey", "guest:test")
		c.Set("isGuest", true)
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAnalysis_Success(t *testing.T) {
	client := &scriptedClient{
		analysisReply:  validAnalysisReply(),
		secondaryReply: validSecondaryReply(),
	}
	router := newTestRouter(t, NewService(client, newMemStore()))

	body, _ := json.Marshal(createRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
		JobTitle:       "Go Engineer",
	})
	rec := postJSON(router, "/api/v1/analyses", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.RunID == "" || report.HistoryID == "" {
		t.Fatalf("expected run and history IDs, got %+v", report)
	}
	if pct := report.Result.SkillMatch.OverallMatchPercentage; pct < 0 || pct > 100 {
		t.Fatalf("percentage out of range: %d", pct)
	}
}

func TestCreateAnalysis_ValidationCitesInput(t *testing.T) {
	router := newTestRouter(t, NewService(&scriptedClient{}, newMemStore()))

	body, _ := json.Marshal(createRequest{ResumeText: "short", JobDescription: testJob})
	rec := postJSON(router, "/api/v1/analyses", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "resumeText") {
		t.Fatalf("expected error to cite resumeText, got %s", rec.Body.String())
	}

	body, _ = json.Marshal(createRequest{ResumeText: testResume, JobDescription: "short"})
	rec = postJSON(router, "/api/v1/analyses", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "jobDescription") {
		t.Fatalf("expected error to cite jobDescription, got %s", rec.Body.String())
	}
}

func TestCreateAnalysis_ParseErrorIs502(t *testing.T) {
	client := &scriptedClient{analysisReply: "no json here"}
	router := newTestRouter(t, NewService(client, newMemStore()))

	body, _ := json.Marshal(createRequest{ResumeText: testResume, JobDescription: testJob})
	rec := postJSON(router, "/api/v1/analyses", string(body))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "analysis_parse_error") {
		t.Fatalf("expected parse error code, got %s", rec.Body.String())
	}
}

func TestCreateAnalysis_InvalidBody(t *testing.T) {
	router := newTestRouter(t, NewService(&scriptedClient{}, newMemStore()))
	rec := postJSON(router, "/api/v1/analyses", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReplayEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(t, NewService(&scriptedClient{}, newMemStore()))
	rec := postJSON(router, "/api/v1/history/missing/replay", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReplayEndpoint_RunsWithoutSaving(t *testing.T) {
	client := &scriptedClient{
		analysisReply:  validAnalysisReply(),
		secondaryReply: validSecondaryReply(),
	}
	store := newMemStore()
	router := newTestRouter(t, NewService(client, store))

	body, _ := json.Marshal(createRequest{ResumeText: testResume, JobDescription: testJob})
	rec := postJSON(router, "/api/v1/analyses", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %d", rec.Code)
	}
	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = postJSON(router, "/api/v1/history/"+report.HistoryID+"/replay", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("replay: %d: %s", rec.Code, rec.Body.String())
	}
	var replayed Report
	if err := json.Unmarshal(rec.Body.Bytes(), &replayed); err != nil {
		t.Fatalf("decode replay: %v", err)
	}
	if replayed.HistoryID != "" {
		t.Fatal("expected replay not to save")
	}
}
