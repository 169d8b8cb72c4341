package app

import (
	httpserver "github.com/presslog/newsroom-backend/internal/http"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers, mw Middleware) *httpserver.Server {
	log.Info("Wiring router...")
	return httpserver.NewServer(httpserver.RouterConfig{
		Log: log,

		AuthHandler:    h.Auth,
		AuthMiddleware: mw.Auth,

		UserHandler:       h.User,
		AgencyHandler:     h.Agency,
		ProductionHandler: h.Production,
		PresenceHandler:   h.Presence,
		StatsHandler:      h.Stats,
		CatalogHandler:    h.Catalog,

		HealthHandler: h.Health,
	})
}
