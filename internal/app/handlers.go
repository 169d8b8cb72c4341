package app

import (
	"github.com/presslog/newsroom-backend/internal/catalog"
	httpH "github.com/presslog/newsroom-backend/internal/http/handlers"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type Handlers struct {
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Agency     *httpH.AgencyHandler
	Production *httpH.ProductionHandler
	Presence   *httpH.PresenceHandler
	Stats      *httpH.StatsHandler
	Catalog    *httpH.CatalogHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services, cat *catalog.Catalog) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       httpH.NewAuthHandler(s.Auth),
		User:       httpH.NewUserHandler(s.User),
		Agency:     httpH.NewAgencyHandler(s.Agency),
		Production: httpH.NewProductionHandler(s.Production),
		Presence:   httpH.NewPresenceHandler(s.Presence),
		Stats:      httpH.NewStatsHandler(s.Stats),
		Catalog:    httpH.NewCatalogHandler(cat),
		Health:     httpH.NewHealthHandler(),
	}
}
