package agency

import (
	"context"
	"testing"

	"github.com/presslog/newsroom-backend/internal/data/repos/testutil"
	types "github.com/presslog/newsroom-backend/internal/domain"
)

func TestAgencyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAgencyRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Agency{
		{ID: 402718, Name: "وكالة الأنباء"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 agency, got %d", len(created))
	}

	got, err := repo.GetByIDs(ctx, tx, []int64{402718})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Name != "وكالة الأنباء" {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}

	exists, err := repo.IDExists(ctx, tx, 402718)
	if err != nil {
		t.Fatalf("IDExists: %v", err)
	}
	if !exists {
		t.Fatalf("IDExists: expected true")
	}

	exists, err = repo.IDExists(ctx, tx, 999999)
	if err != nil {
		t.Fatalf("IDExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("IDExists (missing): expected false")
	}
}

func TestSettingsRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSettingsRepo(db, testutil.Logger(t))
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, 731190, "وكالة الإعدادات")

	got, err := repo.GetByAgencyID(ctx, tx, agency.ID)
	if err != nil {
		t.Fatalf("GetByAgencyID (missing): %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing settings, got %+v", got)
	}

	if err := repo.Upsert(ctx, tx, &types.AgencySettings{
		AgencyID:         agency.ID,
		OnlineGapSeconds: 90,
	}); err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}

	if err := repo.Upsert(ctx, tx, &types.AgencySettings{
		AgencyID:         agency.ID,
		OnlineGapSeconds: 120,
		IdleThresholdMS:  30000,
	}); err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}

	got, err = repo.GetByAgencyID(ctx, tx, agency.ID)
	if err != nil {
		t.Fatalf("GetByAgencyID: %v", err)
	}
	if got == nil {
		t.Fatalf("expected settings row")
	}
	if got.OnlineGapSeconds != 120 || got.IdleThresholdMS != 30000 {
		t.Fatalf("upsert did not update row: %+v", got)
	}
	if got.HeartbeatIntervalMS != 0 {
		t.Fatalf("zero value must stay zero (use-default), got %+v", got)
	}
}
