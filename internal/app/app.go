package app

import (
	"fmt"
	"os"

	"github.com/presslog/newsroom-backend/internal/catalog"
	"github.com/presslog/newsroom-backend/internal/db"
	httpserver "github.com/presslog/newsroom-backend/internal/http"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type App struct {
	Log *logger.Logger
	Cfg Config

	DB      *db.Service
	Catalog *catalog.Catalog

	Repos      Repos
	Services   Services
	Handlers   Handlers
	Middleware Middleware

	Server *httpserver.Server
}

func New(log *logger.Logger) (*App, error) {
	cfg := LoadConfig()

	dbService, err := db.NewService(log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	cat := catalog.Load(log)

	repos := wireRepos(dbService.DB(), log)
	services := wireServices(dbService.DB(), log, cfg, repos, cat)
	handlers := wireHandlers(log, services, cat)
	middleware := wireMiddleware(log, services)
	server := wireRouter(log, handlers, middleware)

	return &App{
		Log:        log,
		Cfg:        cfg,
		DB:         dbService,
		Catalog:    cat,
		Repos:      repos,
		Services:   services,
		Handlers:   handlers,
		Middleware: middleware,
		Server:     server,
	}, nil
}

func (a *App) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	a.Log.Info("Starting server", "port", port)
	return a.Server.Run(":" + port)
}
