package production

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

// ListFilter narrows ListByAgency. Zero values mean "no filter"; Search
// matches headline, journalist name and journalist username.
type ListFilter struct {
	Search     string
	Section    string
	DateString string
}

type ProductionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.ProductionEntry) ([]*types.ProductionEntry, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.ProductionEntry, error)
	ListByAgency(ctx context.Context, tx *gorm.DB, agencyID int64, filter ListFilter) ([]*types.ProductionEntry, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) error
	CountByAgency(ctx context.Context, tx *gorm.DB, agencyID int64) (int64, error)
	CountByAgencyDate(ctx context.Context, tx *gorm.DB, agencyID int64, dateString string) (int64, error)
}

type productionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductionRepo(db *gorm.DB, baseLog *logger.Logger) ProductionRepo {
	repoLog := baseLog.With("repo", "ProductionRepo")
	return &productionRepo{db: db, log: repoLog}
}

func (pr *productionRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ProductionEntry) ([]*types.ProductionEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(entries) == 0 {
		return []*types.ProductionEntry{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (pr *productionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.ProductionEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.ProductionEntry
	if len(entryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", entryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productionRepo) ListByAgency(ctx context.Context, tx *gorm.DB, agencyID int64, filter ListFilter) ([]*types.ProductionEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	query := transaction.WithContext(ctx).
		Where("agency_id = ?", agencyID)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"headline LIKE ? OR journalist_name LIKE ? OR journalist_username LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if section := strings.TrimSpace(filter.Section); section != "" {
		query = query.Where("section = ?", section)
	}
	if date := strings.TrimSpace(filter.DateString); date != "" {
		query = query.Where("date_string = ?", date)
	}

	var results []*types.ProductionEntry
	if err := query.Order("timestamp DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productionRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(entryIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", entryIDs).
		Delete(&types.ProductionEntry{}).Error
}

func (pr *productionRepo) CountByAgency(ctx context.Context, tx *gorm.DB, agencyID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProductionEntry{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *productionRepo) CountByAgencyDate(ctx context.Context, tx *gorm.DB, agencyID int64, dateString string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProductionEntry{}).
		Where("agency_id = ? AND date_string = ?", agencyID, dateString).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
