package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/presslog/newsroom-backend/internal/app"
	"github.com/presslog/newsroom-backend/internal/observability"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

func main() {
	mode := os.Getenv("LOG_MODE")
	if mode == "" {
		mode = "development"
	}
	appLog, err := logger.New(mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	a, err := app.New(appLog)
	if err != nil {
		appLog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	shutdown := observability.InitOTel(context.Background(), appLog, observability.OtelConfig{
		ServiceName: "newsroom-backend",
		Environment: a.Cfg.Environment,
		Version:     a.Cfg.Version,
	})
	if shutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				appLog.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	if err := a.Run(); err != nil {
		appLog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
