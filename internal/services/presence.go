package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	redisclient "github.com/presslog/newsroom-backend/internal/clients/redis"
	"github.com/presslog/newsroom-backend/internal/data/repos"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
	"github.com/presslog/newsroom-backend/internal/presence"
)

// HeartbeatResult echoes the classification and the thresholds so clients
// can align their timers with the agency's configuration.
type HeartbeatResult struct {
	State               presence.State `json:"state"`
	HeartbeatIntervalMS int64          `json:"heartbeat_interval_ms"`
	IdleThresholdMS     int64          `json:"idle_threshold_ms"`
}

// RosterEntry is one agency member on the online roster.
type RosterEntry struct {
	UserID       uuid.UUID  `json:"user_id"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Online       bool       `json:"online"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// DayLogResult is one user's session history for one day plus its rollup.
type DayLogResult struct {
	UserID     uuid.UUID          `json:"user_id"`
	DateString string             `json:"date_string"`
	Sessions   []presence.Session `json:"sessions"`
	Summary    presence.Summary   `json:"summary"`
}

type PresenceService interface {
	Heartbeat(ctx context.Context, interacted bool) (*HeartbeatResult, error)
	Roster(ctx context.Context) ([]RosterEntry, error)
	DayLog(ctx context.Context, userID uuid.UUID, dateString string) (*DayLogResult, error)
}

type presenceService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	dayLogRepo repos.DayLogRepo
	agencySvc  AgencyService
	cache      redisclient.PresenceCache
	now        func() time.Time
}

// NewPresenceService wires presence over the database, with an optional
// Redis cache for the roster fast path (nil cache means DB only).
func NewPresenceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	dayLogRepo repos.DayLogRepo,
	agencySvc AgencyService,
	cache redisclient.PresenceCache,
) PresenceService {
	return &presenceService{
		db:         db,
		log:        baseLog.With("service", "PresenceService"),
		userRepo:   userRepo,
		dayLogRepo: dayLogRepo,
		agencySvc:  agencySvc,
		cache:      cache,
		now:        time.Now,
	}
}

// Heartbeat processes one client beat. Last-active is refreshed whether or
// not the user interacted; only an interacting user mutates the day's
// session log.
func (ps *presenceService) Heartbeat(ctx context.Context, interacted bool) (*HeartbeatResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}

	cfg := ps.agencySvc.PresenceConfig(ctx, rd.AgencyID)
	now := ps.now().UTC()
	store := ps.store()

	if err := store.UpdateLastActive(ctx, rd.UserID, now); err != nil {
		ps.log.Warn("update last active failed", "user_id", rd.UserID.String(), "error", err)
	}

	state := presence.StateIdle
	if interacted {
		state = presence.StateActive
		day := presence.DateString(now)
		sessions, err := store.ReadSessions(ctx, rd.UserID, day)
		if err != nil {
			ps.log.Warn("read day log failed", "user_id", rd.UserID.String(), "date", day, "error", err)
		} else {
			updated := presence.ApplyHeartbeat(sessions, now, cfg)
			if err := store.WriteSessions(ctx, rd.UserID, day, updated); err != nil {
				ps.log.Warn("write day log failed", "user_id", rd.UserID.String(), "date", day, "error", err)
			}
		}
	}

	return &HeartbeatResult{
		State:               state,
		HeartbeatIntervalMS: cfg.HeartbeatInterval.Milliseconds(),
		IdleThresholdMS:     cfg.IdleThreshold.Milliseconds(),
	}, nil
}

// Roster classifies every agency member. Last-active comes from Redis when
// available; members missing from the cache fall back to the user row.
func (ps *presenceService) Roster(ctx context.Context) ([]RosterEntry, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}

	users, err := ps.userRepo.ListByAgency(ctx, nil, rd.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("list agency users: %w", err)
	}

	cached := map[uuid.UUID]time.Time{}
	if ps.cache != nil {
		ids := make([]uuid.UUID, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		cached, err = ps.cache.GetLastActive(ctx, ids)
		if err != nil {
			ps.log.Warn("presence cache read failed; using database", "error", err)
			cached = map[uuid.UUID]time.Time{}
		}
	}

	cfg := ps.agencySvc.PresenceConfig(ctx, rd.AgencyID)
	now := ps.now()

	roster := make([]RosterEntry, 0, len(users))
	for _, u := range users {
		lastActive, ok := cached[u.ID]
		if !ok && u.LastActiveAt != nil {
			lastActive = *u.LastActiveAt
		}
		entry := RosterEntry{
			UserID:   u.ID,
			Username: u.Username,
			Name:     u.Name,
			Role:     u.Role,
			Online:   presence.IsOnline(lastActive, now, cfg),
		}
		if !lastActive.IsZero() {
			at := lastActive
			entry.LastActiveAt = &at
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

func (ps *presenceService) DayLog(ctx context.Context, userID uuid.UUID, dateString string) (*DayLogResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}

	users, err := ps.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 || users[0].AgencyID != rd.AgencyID {
		return nil, ErrNotFound
	}

	result := &DayLogResult{
		UserID:     userID,
		DateString: dateString,
		Sessions:   []presence.Session{},
	}
	row, err := ps.dayLogRepo.GetByUserDate(ctx, nil, userID, dateString)
	if err != nil {
		return nil, fmt.Errorf("load day log: %w", err)
	}
	if row != nil {
		sessions, err := decodeSessions(row.Sessions)
		if err != nil {
			ps.log.Warn("day log holds malformed sessions", "user_id", userID.String(), "date", dateString, "error", err)
		} else {
			result.Sessions = sessions
		}
	}
	result.Summary = presence.Aggregate(result.Sessions)
	return result, nil
}

// store adapts the repos and cache into the presence.Store shape.
func (ps *presenceService) store() presence.Store {
	return &repoStore{svc: ps}
}

type repoStore struct {
	svc *presenceService
}

var _ presence.Store = (*repoStore)(nil)

func (rs *repoStore) ReadSessions(ctx context.Context, userID uuid.UUID, dateString string) ([]presence.Session, error) {
	row, err := rs.svc.dayLogRepo.GetByUserDate(ctx, nil, userID, dateString)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return decodeSessions(row.Sessions)
}

func (rs *repoStore) WriteSessions(ctx context.Context, userID uuid.UUID, dateString string, sessions []presence.Session) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return rs.svc.dayLogRepo.Upsert(ctx, nil, &types.DayLog{
		ID:         uuid.New(),
		UserID:     userID,
		DateString: dateString,
		Sessions:   datatypes.JSON(raw),
	})
}

func (rs *repoStore) UpdateLastActive(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if rs.svc.cache != nil {
		if err := rs.svc.cache.SetLastActive(ctx, userID, at); err != nil {
			rs.svc.log.Warn("presence cache write failed", "user_id", userID.String(), "error", err)
		}
	}
	return rs.svc.userRepo.UpdateLastActive(ctx, nil, userID, at)
}

func decodeSessions(raw datatypes.JSON) ([]presence.Session, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var sessions []presence.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
