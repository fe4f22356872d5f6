package history

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careermatch-backend/internal/shared/server/middleware"
	"careermatch-backend/internal/shared/server/respond"
)

// Handler serves read access to a user's analysis history.
type Handler struct {
	store Store
}

// NewHandler creates a history Handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes attaches history routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.GET("/history/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	userKey := middleware.UserKeyFromContext(c)
	if userKey == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	records, err := h.store.ListByUser(c.Request.Context(), userKey)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	respond.OK(c, gin.H{"records": records})
}

func (h *Handler) get(c *gin.Context) {
	userKey := middleware.UserKeyFromContext(c)
	if userKey == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	rec, err := h.store.GetByID(c.Request.Context(), userKey, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "history record not found", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	respond.OK(c, rec)
}
