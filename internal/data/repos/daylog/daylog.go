package daylog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type DayLogRepo interface {
	GetByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, dateString string) (*types.DayLog, error)
	GetByUsersDate(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, dateString string) ([]*types.DayLog, error)
	Upsert(ctx context.Context, tx *gorm.DB, log *types.DayLog) error
}

type dayLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDayLogRepo(db *gorm.DB, baseLog *logger.Logger) DayLogRepo {
	repoLog := baseLog.With("repo", "DayLogRepo")
	return &dayLogRepo{db: db, log: repoLog}
}

func (dr *dayLogRepo) GetByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, dateString string) (*types.DayLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.DayLog
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND date_string = ?", userID, dateString).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *dayLogRepo) GetByUsersDate(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, dateString string) ([]*types.DayLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.DayLog
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ? AND date_string = ?", userIDs, dateString).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *dayLogRepo) Upsert(ctx context.Context, tx *gorm.DB, log *types.DayLog) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date_string"}},
			DoUpdates: clause.AssignmentColumns([]string{"sessions", "updated_at"}),
		}).
		Create(log).Error
}
