package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
	"github.com/presslog/newsroom-backend/internal/presence"
)

type DashboardStats struct {
	TotalEntries    int64 `json:"total_entries"`
	TodayEntries    int64 `json:"today_entries"`
	MemberCount     int   `json:"member_count"`
	OnlineCount     int   `json:"online_count"`
	PendingApproval int   `json:"pending_approval"`
}

type SectionStat struct {
	Section string  `json:"section"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type JournalistStat struct {
	JournalistID       uuid.UUID `json:"journalist_id"`
	JournalistName     string    `json:"journalist_name"`
	JournalistUsername string    `json:"journalist_username"`
	Count              int       `json:"count"`
}

type PresenceReportEntry struct {
	UserID   uuid.UUID        `json:"user_id"`
	Username string           `json:"username"`
	Name     string           `json:"name"`
	Summary  presence.Summary `json:"summary"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	SectionReport(ctx context.Context) ([]SectionStat, error)
	JournalistReport(ctx context.Context) ([]JournalistStat, error)
	PresenceReport(ctx context.Context, dateString string) ([]PresenceReportEntry, error)
}

type statsService struct {
	db             *gorm.DB
	log            *logger.Logger
	productionRepo repos.ProductionRepo
	userRepo       repos.UserRepo
	dayLogRepo     repos.DayLogRepo
	presenceSvc    PresenceService
	now            func() time.Time
}

func NewStatsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	productionRepo repos.ProductionRepo,
	userRepo repos.UserRepo,
	dayLogRepo repos.DayLogRepo,
	presenceSvc PresenceService,
) StatsService {
	return &statsService{
		db:             db,
		log:            baseLog.With("service", "StatsService"),
		productionRepo: productionRepo,
		userRepo:       userRepo,
		dayLogRepo:     dayLogRepo,
		presenceSvc:    presenceSvc,
		now:            time.Now,
	}
}

// Dashboard gathers the headline numbers concurrently; each count is an
// independent query.
func (ss *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}

	stats := &DashboardStats{}
	today := presence.DateString(ss.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := ss.productionRepo.CountByAgency(gctx, nil, rd.AgencyID)
		if err != nil {
			return fmt.Errorf("count entries: %w", err)
		}
		stats.TotalEntries = total
		return nil
	})
	g.Go(func() error {
		count, err := ss.productionRepo.CountByAgencyDate(gctx, nil, rd.AgencyID, today)
		if err != nil {
			return fmt.Errorf("count today entries: %w", err)
		}
		stats.TodayEntries = count
		return nil
	})
	g.Go(func() error {
		roster, err := ss.presenceSvc.Roster(gctx)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		stats.MemberCount = len(roster)
		for _, entry := range roster {
			if entry.Online {
				stats.OnlineCount++
			}
		}
		return nil
	})
	g.Go(func() error {
		users, err := ss.userRepo.ListByAgency(gctx, nil, rd.AgencyID)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		for _, u := range users {
			if !u.Approved {
				stats.PendingApproval++
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (ss *statsService) SectionReport(ctx context.Context) ([]SectionStat, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	entries, err := ss.productionRepo.ListByAgency(ctx, nil, rd.AgencyID, repos.ProductionListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Section]++
	}
	total := len(entries)

	report := make([]SectionStat, 0, len(counts))
	for section, count := range counts {
		stat := SectionStat{Section: section, Count: count}
		if total > 0 {
			stat.Percent = float64(count) / float64(total) * 100
		}
		report = append(report, stat)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Count != report[j].Count {
			return report[i].Count > report[j].Count
		}
		return report[i].Section < report[j].Section
	})
	return report, nil
}

func (ss *statsService) JournalistReport(ctx context.Context) ([]JournalistStat, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	entries, err := ss.productionRepo.ListByAgency(ctx, nil, rd.AgencyID, repos.ProductionListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	byID := map[uuid.UUID]*JournalistStat{}
	for _, e := range entries {
		stat, ok := byID[e.JournalistID]
		if !ok {
			stat = &JournalistStat{
				JournalistID:       e.JournalistID,
				JournalistName:     e.JournalistName,
				JournalistUsername: e.JournalistUsername,
			}
			byID[e.JournalistID] = stat
		}
		stat.Count++
	}

	report := make([]JournalistStat, 0, len(byID))
	for _, stat := range byID {
		report = append(report, *stat)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Count != report[j].Count {
			return report[i].Count > report[j].Count
		}
		return report[i].JournalistUsername < report[j].JournalistUsername
	})
	return report, nil
}

// PresenceReport aggregates every member's day log for one date. Members
// without a log for the day show zero sessions rather than being dropped.
func (ss *statsService) PresenceReport(ctx context.Context, dateString string) ([]PresenceReportEntry, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	if dateString == "" {
		dateString = presence.DateString(ss.now())
	}

	users, err := ss.userRepo.ListByAgency(ctx, nil, rd.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	logs, err := ss.dayLogRepo.GetByUsersDate(ctx, nil, ids, dateString)
	if err != nil {
		return nil, fmt.Errorf("load day logs: %w", err)
	}
	byUser := map[uuid.UUID][]presence.Session{}
	for _, row := range logs {
		sessions, err := decodeSessions(row.Sessions)
		if err != nil {
			ss.log.Warn("day log holds malformed sessions", "user_id", row.UserID.String(), "date", dateString, "error", err)
			continue
		}
		byUser[row.UserID] = sessions
	}

	report := make([]PresenceReportEntry, 0, len(users))
	for _, u := range users {
		report = append(report, PresenceReportEntry{
			UserID:   u.ID,
			Username: u.Username,
			Name:     u.Name,
			Summary:  presence.Aggregate(byUser[u.ID]),
		})
	}
	return report, nil
}
