package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	"github.com/presslog/newsroom-backend/internal/data/repos/testutil"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/presence"
)

type presenceFixture struct {
	tx          *gorm.DB
	presenceSvc PresenceService
	agencySvc   AgencyService
	userRepo    repos.UserRepo
	dayLogRepo  repos.DayLogRepo
	agency      *types.Agency
	user        *types.User
}

func newPresenceFixture(t *testing.T, agencyID int64) *presenceFixture {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, agencyID, "وكالة الحضور")
	user := testutil.SeedUser(t, ctx, tx, agency.ID, "presence_user", types.RoleJournalist)

	userRepo := repos.NewUserRepo(tx, log)
	dayLogRepo := repos.NewDayLogRepo(tx, log)
	agencyRepo := repos.NewAgencyRepo(tx, log)
	settingsRepo := repos.NewAgencySettingsRepo(tx, log)
	agencySvc := NewAgencyService(tx, log, agencyRepo, settingsRepo)
	presenceSvc := NewPresenceService(tx, log, userRepo, dayLogRepo, agencySvc, nil)

	return &presenceFixture{
		tx:          tx,
		presenceSvc: presenceSvc,
		agencySvc:   agencySvc,
		userRepo:    userRepo,
		dayLogRepo:  dayLogRepo,
		agency:      agency,
		user:        user,
	}
}

func (f *presenceFixture) authedCtx() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   f.user.ID,
		AgencyID: f.agency.ID,
		Role:     f.user.Role,
	})
}

func setClock(svc PresenceService, at time.Time) {
	svc.(*presenceService).now = func() time.Time { return at }
}

func TestHeartbeatActiveWritesDayLog(t *testing.T) {
	f := newPresenceFixture(t, 841772)
	ctx := f.authedCtx()

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	setClock(f.presenceSvc, at)

	result, err := f.presenceSvc.Heartbeat(ctx, true)
	if err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if result.State != presence.StateActive {
		t.Fatalf("interacted heartbeat: got %s, want active", result.State)
	}
	if result.HeartbeatIntervalMS != 15000 {
		t.Fatalf("default interval: got %d, want 15000", result.HeartbeatIntervalMS)
	}

	dayLog, err := f.presenceSvc.DayLog(ctx, f.user.ID, "2025-03-01")
	if err != nil {
		t.Fatalf("DayLog: %v", err)
	}
	if len(dayLog.Sessions) != 1 {
		t.Fatalf("expected one session, got %+v", dayLog.Sessions)
	}
	if dayLog.Summary.LoginCount != 1 {
		t.Fatalf("login count: got %d, want 1", dayLog.Summary.LoginCount)
	}

	users, err := f.userRepo.GetByIDs(ctx, nil, []uuid.UUID{f.user.ID})
	if err != nil || len(users) != 1 {
		t.Fatalf("GetByIDs: %v (%d)", err, len(users))
	}
	if users[0].LastActiveAt == nil || !users[0].LastActiveAt.Equal(at) {
		t.Fatalf("last active not persisted: %v", users[0].LastActiveAt)
	}
}

func TestHeartbeatIdleSkipsDayLog(t *testing.T) {
	f := newPresenceFixture(t, 911003)
	ctx := f.authedCtx()

	at := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	setClock(f.presenceSvc, at)

	result, err := f.presenceSvc.Heartbeat(ctx, false)
	if err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if result.State != presence.StateIdle {
		t.Fatalf("idle heartbeat: got %s, want idle", result.State)
	}

	dayLog, err := f.presenceSvc.DayLog(ctx, f.user.ID, "2025-03-01")
	if err != nil {
		t.Fatalf("DayLog: %v", err)
	}
	if len(dayLog.Sessions) != 0 {
		t.Fatalf("idle heartbeat must not open sessions: %+v", dayLog.Sessions)
	}

	users, err := f.userRepo.GetByIDs(ctx, nil, []uuid.UUID{f.user.ID})
	if err != nil || len(users) != 1 {
		t.Fatalf("GetByIDs: %v (%d)", err, len(users))
	}
	if users[0].LastActiveAt == nil || !users[0].LastActiveAt.Equal(at) {
		t.Fatalf("idle heartbeat must still refresh last active: %v", users[0].LastActiveAt)
	}
}

func TestRosterClassifiesMembers(t *testing.T) {
	f := newPresenceFixture(t, 733210)
	ctx := f.authedCtx()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	setClock(f.presenceSvc, now)

	online := testutil.SeedUser(t, context.Background(), f.tx, f.agency.ID, "roster_online", types.RoleJournalist)
	offline := testutil.SeedUser(t, context.Background(), f.tx, f.agency.ID, "roster_offline", types.RoleJournalist)
	if err := f.userRepo.UpdateLastActive(ctx, nil, online.ID, now.Add(-30*time.Second)); err != nil {
		t.Fatalf("UpdateLastActive: %v", err)
	}
	if err := f.userRepo.UpdateLastActive(ctx, nil, offline.ID, now.Add(-5*time.Minute)); err != nil {
		t.Fatalf("UpdateLastActive: %v", err)
	}

	roster, err := f.presenceSvc.Roster(ctx)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	states := map[string]bool{}
	for _, entry := range roster {
		states[entry.Username] = entry.Online
	}
	if !states["roster_online"] {
		t.Fatalf("30s of silence must be online: %+v", roster)
	}
	if states["roster_offline"] {
		t.Fatalf("5m of silence must be offline: %+v", roster)
	}
	if states["presence_user"] {
		t.Fatalf("never-seen user must be offline: %+v", roster)
	}
}

func TestAgencyOverridesChangeThresholds(t *testing.T) {
	f := newPresenceFixture(t, 625881)
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   f.user.ID,
		AgencyID: f.agency.ID,
		Role:     types.RoleAdmin,
	})

	if _, err := f.agencySvc.UpdateSettings(ctx, SettingsPatch{OnlineGapSeconds: 600}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	now := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	setClock(f.presenceSvc, now)
	if err := f.userRepo.UpdateLastActive(ctx, nil, f.user.ID, now.Add(-5*time.Minute)); err != nil {
		t.Fatalf("UpdateLastActive: %v", err)
	}

	roster, err := f.presenceSvc.Roster(ctx)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	for _, entry := range roster {
		if entry.Username == "presence_user" && !entry.Online {
			t.Fatalf("with a 10m gap override, 5m of silence must be online")
		}
	}

	cfg := f.agencySvc.PresenceConfig(ctx, f.agency.ID)
	if cfg.OnlineGap != 600*time.Second {
		t.Fatalf("override not applied: %v", cfg.OnlineGap)
	}
	if cfg.HeartbeatInterval != presence.DefaultConfig().HeartbeatInterval {
		t.Fatalf("unset knobs must keep defaults: %v", cfg.HeartbeatInterval)
	}
}

func TestDayLogDeniesOtherAgencies(t *testing.T) {
	f := newPresenceFixture(t, 570042)

	other := testutil.SeedAgency(t, context.Background(), f.tx, 113377, "وكالة أخرى")
	stranger := testutil.SeedUser(t, context.Background(), f.tx, other.ID, "stranger", types.RoleJournalist)

	_, err := f.presenceSvc.DayLog(f.authedCtx(), stranger.ID, "2025-03-01")
	if err != ErrNotFound {
		t.Fatalf("cross-agency day log: got %v, want ErrNotFound", err)
	}
}
