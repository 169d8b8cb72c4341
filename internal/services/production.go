package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/catalog"
	"github.com/presslog/newsroom-backend/internal/data/repos"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
	"github.com/presslog/newsroom-backend/internal/presence"
)

type CreateEntryInput struct {
	Headline string `json:"headline"`
	Section  string `json:"section"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
	URL      string `json:"url"`
}

type ProductionService interface {
	CreateEntry(ctx context.Context, input CreateEntryInput) (*types.ProductionEntry, error)
	ListEntries(ctx context.Context, search, section, dateString string) ([]*types.ProductionEntry, error)
	DeleteEntry(ctx context.Context, entryID uuid.UUID) error
}

type productionService struct {
	db             *gorm.DB
	log            *logger.Logger
	productionRepo repos.ProductionRepo
	userRepo       repos.UserRepo
	catalog        *catalog.Catalog
}

func NewProductionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	productionRepo repos.ProductionRepo,
	userRepo repos.UserRepo,
	cat *catalog.Catalog,
) ProductionService {
	return &productionService{
		db:             db,
		log:            baseLog.With("service", "ProductionService"),
		productionRepo: productionRepo,
		userRepo:       userRepo,
		catalog:        cat,
	}
}

func (ps *productionService) CreateEntry(ctx context.Context, input CreateEntryInput) (*types.ProductionEntry, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}

	headline := strings.TrimSpace(input.Headline)
	if headline == "" {
		return nil, fmt.Errorf("headline is required")
	}
	if !ps.catalog.ValidSection(input.Section) {
		return nil, fmt.Errorf("unknown section: %s", input.Section)
	}
	if !ps.catalog.ValidPlatform(input.Platform) {
		return nil, fmt.Errorf("unknown platform: %s", input.Platform)
	}
	if !ps.catalog.ValidStatus(input.Status) {
		return nil, fmt.Errorf("unknown status: %s", input.Status)
	}

	users, err := ps.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	author := users[0]

	now := time.Now().UTC()
	entry := &types.ProductionEntry{
		ID:                 uuid.New(),
		AgencyID:           rd.AgencyID,
		JournalistID:       author.ID,
		JournalistName:     author.Name,
		JournalistUsername: author.Username,
		Headline:           headline,
		Section:            strings.TrimSpace(input.Section),
		Platform:           strings.TrimSpace(input.Platform),
		Status:             strings.TrimSpace(input.Status),
		URL:                strings.TrimSpace(input.URL),
		DateString:         presence.DateString(now),
		Timestamp:          now,
	}
	if _, err := ps.productionRepo.Create(ctx, nil, []*types.ProductionEntry{entry}); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

func (ps *productionService) ListEntries(ctx context.Context, search, section, dateString string) ([]*types.ProductionEntry, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	return ps.productionRepo.ListByAgency(ctx, nil, rd.AgencyID, repos.ProductionListFilter{
		Search:     search,
		Section:    section,
		DateString: dateString,
	})
}

// DeleteEntry removes a logged item. Admins and editors can delete anything
// in their agency; journalists only their own entries.
func (ps *productionService) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return ErrNoRequestData
	}
	entries, err := ps.productionRepo.GetByIDs(ctx, nil, []uuid.UUID{entryID})
	if err != nil {
		return fmt.Errorf("load entry: %w", err)
	}
	if len(entries) == 0 || entries[0].AgencyID != rd.AgencyID {
		return ErrNotFound
	}
	entry := entries[0]
	if rd.Role != types.RoleAdmin && rd.Role != types.RoleEditor && entry.JournalistID != rd.UserID {
		return ErrForbidden
	}
	return ps.productionRepo.DeleteByIDs(ctx, nil, []uuid.UUID{entry.ID})
}
