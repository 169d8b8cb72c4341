package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
	"github.com/presslog/newsroom-backend/internal/presence"
)

// SettingsPatch updates per-agency presence thresholds. Zero resets a knob
// to the built-in default.
type SettingsPatch struct {
	HeartbeatIntervalMS int `json:"heartbeat_interval_ms"`
	OnlineGapSeconds    int `json:"online_gap_seconds"`
	IdleThresholdMS     int `json:"idle_threshold_ms"`
}

type AgencyService interface {
	GetAgency(ctx context.Context) (*types.Agency, error)
	GetSettings(ctx context.Context) (*types.AgencySettings, error)
	UpdateSettings(ctx context.Context, patch SettingsPatch) (*types.AgencySettings, error)
	PresenceConfig(ctx context.Context, agencyID int64) presence.Config
}

type agencyService struct {
	db           *gorm.DB
	log          *logger.Logger
	agencyRepo   repos.AgencyRepo
	settingsRepo repos.AgencySettingsRepo
}

func NewAgencyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	agencyRepo repos.AgencyRepo,
	settingsRepo repos.AgencySettingsRepo,
) AgencyService {
	return &agencyService{
		db:           db,
		log:          baseLog.With("service", "AgencyService"),
		agencyRepo:   agencyRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *agencyService) GetAgency(ctx context.Context) (*types.Agency, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	agencies, err := s.agencyRepo.GetByIDs(ctx, nil, []int64{rd.AgencyID})
	if err != nil {
		return nil, fmt.Errorf("load agency: %w", err)
	}
	if len(agencies) == 0 {
		return nil, ErrNotFound
	}
	return agencies[0], nil
}

func (s *agencyService) GetSettings(ctx context.Context) (*types.AgencySettings, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	settings, err := s.settingsRepo.GetByAgencyID(ctx, nil, rd.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		settings = &types.AgencySettings{AgencyID: rd.AgencyID}
	}
	return settings, nil
}

func (s *agencyService) UpdateSettings(ctx context.Context, patch SettingsPatch) (*types.AgencySettings, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	if rd.Role != types.RoleAdmin {
		return nil, ErrForbidden
	}
	if patch.HeartbeatIntervalMS < 0 || patch.OnlineGapSeconds < 0 || patch.IdleThresholdMS < 0 {
		return nil, fmt.Errorf("thresholds cannot be negative")
	}
	settings := &types.AgencySettings{
		AgencyID:            rd.AgencyID,
		HeartbeatIntervalMS: patch.HeartbeatIntervalMS,
		OnlineGapSeconds:    patch.OnlineGapSeconds,
		IdleThresholdMS:     patch.IdleThresholdMS,
	}
	if err := s.settingsRepo.Upsert(ctx, nil, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// PresenceConfig resolves the thresholds for an agency, falling back to the
// built-in defaults when no override is set. Lookup failures also fall back;
// presence keeps working while settings are unavailable.
func (s *agencyService) PresenceConfig(ctx context.Context, agencyID int64) presence.Config {
	cfg := presence.DefaultConfig()
	settings, err := s.settingsRepo.GetByAgencyID(ctx, nil, agencyID)
	if err != nil {
		s.log.Warn("settings lookup failed; using default presence config", "agency_id", agencyID, "error", err)
		return cfg
	}
	if settings == nil {
		return cfg
	}
	if settings.HeartbeatIntervalMS > 0 {
		cfg.HeartbeatInterval = time.Duration(settings.HeartbeatIntervalMS) * time.Millisecond
	}
	if settings.OnlineGapSeconds > 0 {
		cfg.OnlineGap = time.Duration(settings.OnlineGapSeconds) * time.Second
	}
	if settings.IdleThresholdMS > 0 {
		cfg.IdleThreshold = time.Duration(settings.IdleThresholdMS) * time.Millisecond
	}
	return cfg
}
