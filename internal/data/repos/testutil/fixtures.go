package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/domain"
)

func SeedAgency(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64, name string) *domain.Agency {
	tb.Helper()
	a := &domain.Agency{
		ID:   id,
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed agency: %v", err)
	}
	return a
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID int64, username, role string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: "pw",
		Name:     "صحفي",
		Role:     role,
		AgencyID: agencyID,
		Approved: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedToken(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, access, refresh string, expiresAt time.Time) *domain.UserToken {
	tb.Helper()
	t := &domain.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed token: %v", err)
	}
	return t
}

func SeedProductionEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID int64, journalist *domain.User, headline, section string, at time.Time) *domain.ProductionEntry {
	tb.Helper()
	e := &domain.ProductionEntry{
		ID:                 uuid.New(),
		AgencyID:           agencyID,
		JournalistID:       journalist.ID,
		JournalistName:     journalist.Name,
		JournalistUsername: journalist.Username,
		Headline:           headline,
		Section:            section,
		Platform:           "الموقع الإلكتروني",
		Status:             "نشرت",
		DateString:         at.UTC().Format("2006-01-02"),
		Timestamp:          at,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed production entry: %v", err)
	}
	return e
}

func SeedDayLog(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, dateString string, sessions string) *domain.DayLog {
	tb.Helper()
	d := &domain.DayLog{
		ID:         uuid.New(),
		UserID:     userID,
		DateString: dateString,
		Sessions:   datatypes.JSON([]byte(sessions)),
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed day log: %v", err)
	}
	return d
}

func PtrTime(v time.Time) *time.Time { return &v }
