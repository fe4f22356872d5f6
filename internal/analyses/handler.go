package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careermatch-backend/internal/history"
	"careermatch-backend/internal/shared/server/middleware"
	"careermatch-backend/internal/shared/server/respond"
)

// Handler serves analysis runs and history replays.
type Handler struct {
	service *Service
}

// NewHandler creates an analyses Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches analysis routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.POST("/history/:id/replay", h.replay)
}

type createRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	JobTitle       string `json:"jobTitle"`
}

func (h *Handler) create(c *gin.Context) {
	userKey := middleware.UserKeyFromContext(c)
	if userKey == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	input := RunInput{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		JobTitle:       req.JobTitle,
	}

	report, err := h.service.Run(c.Request.Context(), userKey, input, RunOptions{})
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	c.Set("analysisRunId", report.RunID)
	respond.OK(c, report)
}

func (h *Handler) replay(c *gin.Context) {
	userKey := middleware.UserKeyFromContext(c)
	if userKey == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	report, err := h.service.Replay(c.Request.Context(), userKey, c.Param("id"))
	if errors.Is(err, history.ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "history record not found", nil)
		return
	}
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	c.Set("analysisRunId", report.RunID)
	respond.OK(c, report)
}

// writeRunError maps orchestrator errors: validation cites the specific
// input, parse errors report the analysis could not be decoded.
func (h *Handler) writeRunError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResumeTooShort):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrResumeTooShort.Error(), gin.H{"field": "resumeText"})
	case errors.Is(err, ErrJobTooShort):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrJobTooShort.Error(), gin.H{"field": "jobDescription"})
	case errors.Is(err, ErrParseAnalysis):
		respond.Error(c, http.StatusBadGateway, "analysis_parse_error", ErrParseAnalysis.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}
