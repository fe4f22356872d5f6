package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"careermatch-backend/internal/analyses"
	googleauth "careermatch-backend/internal/auth"
	"careermatch-backend/internal/documents"
	"careermatch-backend/internal/history"
	"careermatch-backend/internal/jobfetch"
	"careermatch-backend/internal/llm"
	"careermatch-backend/internal/llm/gemini"
	"careermatch-backend/internal/shared/config"
	"careermatch-backend/internal/shared/server"
	"careermatch-backend/internal/shared/storage/db"
	localstore "careermatch-backend/internal/shared/storage/object/local"
)

// App holds the built dependency graph.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	HistoryStore    history.Store
	LLM             llm.Client
	ResumeService   *documents.Service
	AnalysisService *analyses.Service
}

// Build wires configuration into a ready-to-serve application.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildHistoryStore(cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	llmClient := buildLLM(cfg)

	objectStore := localstore.New(cfg.LocalStoreDir)
	resumeSvc := documents.NewService(documents.NewMemoryRepo(), objectStore)
	analysisSvc := analyses.NewService(llmClient, store)
	fetcher := jobfetch.New(cfg.CORSRelayURL)
	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
	)

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		HistoryStore:    store,
		LLM:             llmClient,
		ResumeService:   resumeSvc,
		AnalysisService: analysisSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		GoogleAuth:      googleAuth,
		ResumeHandler:   documents.NewHandler(resumeSvc),
		JobHandler:      jobfetch.NewHandler(fetcher),
		AnalysisHandler: analyses.NewHandler(analysisSvc),
		HistoryHandler:  history.NewHandler(store),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using file-backed history")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using file-backed history: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using file-backed history: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildHistoryStore(cfg config.Config, sqlDB *sql.DB) (history.Store, error) {
	if sqlDB != nil {
		return history.NewPGStore(sqlDB), nil
	}
	return history.NewFileStore(cfg.HistoryDir, cfg.HistoryKeyPrefix)
}

func buildLLM(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; analysis will serve fallback content")
		return llm.PlaceholderClient{}
	}
	client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	if err != nil {
		log.Printf("bootstrap: gemini client init failed; analysis will serve fallback content: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
