package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careermatch-backend/internal/extract"
	"careermatch-backend/internal/shared/server/middleware"
	"careermatch-backend/internal/shared/server/respond"
)

// The multipart envelope needs headroom beyond the document cap itself.
const maxUploadSize = extract.MaxFileSizeBytes + 1<<20

// Handler wires resume upload HTTP routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes/current", h.current)
}

func (h *Handler) upload(c *gin.Context) {
	userKey := middleware.UserKeyFromContext(c)
	if userKey == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	doc, err := h.Svc.Upload(c.Request.Context(), userKey, fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, extract.ErrFileTooLarge), errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, doc)
}

func (h *Handler) current(c *gin.Context) {
	userKey := middleware.UserKeyFromContext(c)
	if userKey == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	doc, err := h.Svc.Current(c.Request.Context(), userKey)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "no resume uploaded", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}
	respond.OK(c, doc)
}
