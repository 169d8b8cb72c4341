package repos

import (
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos/agency"
	"github.com/presslog/newsroom-backend/internal/data/repos/daylog"
	"github.com/presslog/newsroom-backend/internal/data/repos/production"
	"github.com/presslog/newsroom-backend/internal/data/repos/user"
	"github.com/presslog/newsroom-backend/internal/data/repos/usertoken"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = usertoken.UserTokenRepo

type AgencyRepo = agency.AgencyRepo
type AgencySettingsRepo = agency.SettingsRepo

type ProductionRepo = production.ProductionRepo
type ProductionListFilter = production.ListFilter

type DayLogRepo = daylog.DayLogRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return usertoken.NewUserTokenRepo(db, baseLog)
}

func NewAgencyRepo(db *gorm.DB, baseLog *logger.Logger) AgencyRepo {
	return agency.NewAgencyRepo(db, baseLog)
}
func NewAgencySettingsRepo(db *gorm.DB, baseLog *logger.Logger) AgencySettingsRepo {
	return agency.NewSettingsRepo(db, baseLog)
}

func NewProductionRepo(db *gorm.DB, baseLog *logger.Logger) ProductionRepo {
	return production.NewProductionRepo(db, baseLog)
}

func NewDayLogRepo(db *gorm.DB, baseLog *logger.Logger) DayLogRepo {
	return daylog.NewDayLogRepo(db, baseLog)
}
