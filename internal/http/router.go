package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/presslog/newsroom-backend/internal/http/handlers"
	httpMW "github.com/presslog/newsroom-backend/internal/http/middleware"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	UserHandler       *httpH.UserHandler
	AgencyHandler     *httpH.AgencyHandler
	ProductionHandler *httpH.ProductionHandler
	PresenceHandler   *httpH.PresenceHandler
	StatsHandler      *httpH.StatsHandler
	CatalogHandler    *httpH.CatalogHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("newsroom-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.GET("/users", cfg.UserHandler.ListAgencyUsers)
			protected.POST("/users/:id/approve", cfg.UserHandler.ApproveUser)
			protected.DELETE("/users/:id", cfg.UserHandler.RemoveUser)
		}

		// Agency
		if cfg.AgencyHandler != nil {
			protected.GET("/agency", cfg.AgencyHandler.GetAgency)
			protected.GET("/agency/settings", cfg.AgencyHandler.GetSettings)
			protected.PUT("/agency/settings", cfg.AgencyHandler.UpdateSettings)
		}

		// Production log
		if cfg.ProductionHandler != nil {
			protected.POST("/production", cfg.ProductionHandler.CreateEntry)
			protected.GET("/production", cfg.ProductionHandler.ListEntries)
			protected.DELETE("/production/:id", cfg.ProductionHandler.DeleteEntry)
		}

		// Presence
		if cfg.PresenceHandler != nil {
			protected.POST("/presence/heartbeat", cfg.PresenceHandler.Heartbeat)
			protected.GET("/presence/roster", cfg.PresenceHandler.Roster)
			protected.GET("/presence/users/:id/day-log", cfg.PresenceHandler.DayLog)
		}

		// Stats
		if cfg.StatsHandler != nil {
			protected.GET("/stats/dashboard", cfg.StatsHandler.Dashboard)
			protected.GET("/stats/sections", cfg.StatsHandler.Sections)
			protected.GET("/stats/journalists", cfg.StatsHandler.Journalists)
			protected.GET("/stats/presence", cfg.StatsHandler.Presence)
		}

		// Catalog
		if cfg.CatalogHandler != nil {
			protected.GET("/catalog", cfg.CatalogHandler.GetCatalog)
		}
	}

	return r
}
