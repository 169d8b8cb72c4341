package agency

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

type AgencyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, agencies []*types.Agency) ([]*types.Agency, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, agencyIDs []int64) ([]*types.Agency, error)
	IDExists(ctx context.Context, tx *gorm.DB, agencyID int64) (bool, error)
}

type SettingsRepo interface {
	GetByAgencyID(ctx context.Context, tx *gorm.DB, agencyID int64) (*types.AgencySettings, error)
	Upsert(ctx context.Context, tx *gorm.DB, settings *types.AgencySettings) error
}

type agencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgencyRepo(db *gorm.DB, baseLog *logger.Logger) AgencyRepo {
	repoLog := baseLog.With("repo", "AgencyRepo")
	return &agencyRepo{db: db, log: repoLog}
}

func (ar *agencyRepo) Create(ctx context.Context, tx *gorm.DB, agencies []*types.Agency) ([]*types.Agency, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(agencies) == 0 {
		return []*types.Agency{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func (ar *agencyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, agencyIDs []int64) ([]*types.Agency, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Agency
	if len(agencyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", agencyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *agencyRepo) IDExists(ctx context.Context, tx *gorm.DB, agencyID int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Agency{}).
		Where("id = ?", agencyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	repoLog := baseLog.With("repo", "AgencySettingsRepo")
	return &settingsRepo{db: db, log: repoLog}
}

func (sr *settingsRepo) GetByAgencyID(ctx context.Context, tx *gorm.DB, agencyID int64) (*types.AgencySettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.AgencySettings
	err := transaction.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *settingsRepo) Upsert(ctx context.Context, tx *gorm.DB, settings *types.AgencySettings) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "agency_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"heartbeat_interval_ms",
				"online_gap_seconds",
				"idle_threshold_ms",
				"updated_at",
			}),
		}).
		Create(settings).Error
}
