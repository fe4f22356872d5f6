package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careermatch-backend/internal/analyses"
	googleauth "careermatch-backend/internal/auth"
	"careermatch-backend/internal/documents"
	"careermatch-backend/internal/history"
	"careermatch-backend/internal/jobfetch"
	"careermatch-backend/internal/shared/config"
	"careermatch-backend/internal/shared/metrics"
	"careermatch-backend/internal/shared/server/middleware"
	"careermatch-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	GoogleAuth      *googleauth.GoogleService
	ResumeHandler   *documents.Handler
	JobHandler      *jobfetch.Handler
	AnalysisHandler *analyses.Handler
	HistoryHandler  *history.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	// The analyze endpoints do real LLM work; everything else is cheap.
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost &&
				(c.FullPath() == "/api/v1/analyses" || c.FullPath() == "/api/v1/history/:id/replay") {
				return "ANALYZE"
			}
			return ""
		},
	}))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "env": deps.Config.Env})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
