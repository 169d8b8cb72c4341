package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/platform/envutil"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

// Service owns the database handle. Postgres is the production driver;
// DB_DRIVER=sqlite runs the same schema on a local file for small
// deployments and development.
type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(envutil.Str("DB_DRIVER", "postgres"))

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := envutil.Str("SQLITE_PATH", "newsroom.db")
		serviceLog.Info("connecting to sqlite", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	case "postgres":
		host := envutil.Str("POSTGRES_HOST", "localhost")
		port := envutil.Str("POSTGRES_PORT", "5432")
		user := envutil.Str("POSTGRES_USER", "postgres")
		password := envutil.Str("POSTGRES_PASSWORD", "")
		name := envutil.Str("POSTGRES_NAME", "newsroom")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		serviceLog.Info("connecting to postgres", "host", host, "db", name)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", driver)
	}
	if err != nil {
		serviceLog.Error("database connect failed", "driver", driver, "error", err)
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	return &Service{db: db, driver: driver, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("migrating tables")
	err := s.db.AutoMigrate(
		&domain.Agency{},
		&domain.AgencySettings{},
		&domain.User{},
		&domain.UserToken{},
		&domain.ProductionEntry{},
		&domain.DayLog{},
	)
	if err != nil {
		s.log.Error("migration failed", "error", err)
		return err
	}
	if s.driver != "postgres" {
		return nil
	}
	if err := s.db.Exec(`
		ALTER TABLE "user_token"
		DROP CONSTRAINT IF EXISTS "fk_user_token_user_id"
	`).Error; err != nil {
		return fmt.Errorf("drop fk_user_token_user_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "user_token"
		ADD CONSTRAINT "fk_user_token_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("add fk_user_token_user_id: %w", err)
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
