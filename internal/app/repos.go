package app

import (
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	Agency         repos.AgencyRepo
	AgencySettings repos.AgencySettingsRepo
	Production     repos.ProductionRepo
	DayLog         repos.DayLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		Agency:         repos.NewAgencyRepo(db, log),
		AgencySettings: repos.NewAgencySettingsRepo(db, log),
		Production:     repos.NewProductionRepo(db, log),
		DayLog:         repos.NewDayLogRepo(db, log),
	}
}
