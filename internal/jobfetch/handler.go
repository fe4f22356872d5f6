package jobfetch

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careermatch-backend/internal/shared/server/respond"
)

// Handler exposes the job-posting fetch over HTTP.
type Handler struct {
	fetcher *Fetcher
}

// NewHandler creates a jobfetch Handler.
func NewHandler(fetcher *Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// RegisterRoutes attaches job routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/fetch", h.fetch)
}

type fetchRequest struct {
	URL string `json:"url"`
}

func (h *Handler) fetch(c *gin.Context) {
	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}

	jobText, err := h.fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		// The message is the user guidance; a manual paste is always an
		// alternative, so the failure is a 422 rather than a 5xx.
		respond.Error(c, http.StatusUnprocessableEntity, "fetch_failed", err.Error(), gin.H{"fallback": "paste the job description manually"})
		return
	}

	respond.OK(c, gin.H{"jobText": jobText, "sourceUrl": req.URL})
}
