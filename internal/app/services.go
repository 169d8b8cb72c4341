package app

import (
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/catalog"
	redisclient "github.com/presslog/newsroom-backend/internal/clients/redis"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
	"github.com/presslog/newsroom-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Agency     services.AgencyService
	Production services.ProductionService
	Presence   services.PresenceService
	Stats      services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, cat *catalog.Catalog) Services {
	log.Info("Wiring services...")

	var cache redisclient.PresenceCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redisclient.NewPresenceCache(log)
		if err != nil {
			log.Warn("presence cache unavailable, falling back to database", "error", err)
		} else {
			cache = c
		}
	}

	authSvc := services.NewAuthService(
		db,
		log,
		r.User,
		r.UserToken,
		r.Agency,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userSvc := services.NewUserService(db, log, r.User)
	agencySvc := services.NewAgencyService(db, log, r.Agency, r.AgencySettings)
	productionSvc := services.NewProductionService(db, log, r.Production, r.User, cat)
	presenceSvc := services.NewPresenceService(db, log, r.User, r.DayLog, agencySvc, cache)
	statsSvc := services.NewStatsService(db, log, r.Production, r.User, r.DayLog, presenceSvc)

	return Services{
		Auth:       authSvc,
		User:       userSvc,
		Agency:     agencySvc,
		Production: productionSvc,
		Presence:   presenceSvc,
		Stats:      statsSvc,
	}
}
