package daylog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/presslog/newsroom-backend/internal/data/repos/testutil"
	types "github.com/presslog/newsroom-backend/internal/domain"
)

func TestDayLogRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDayLogRepo(db, testutil.Logger(t))
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, 150662, "وكالة")
	u := testutil.SeedUser(t, ctx, tx, agency.ID, "daylog_user", types.RoleJournalist)

	got, err := repo.GetByUserDate(ctx, tx, u.ID, "2025-03-01")
	if err != nil {
		t.Fatalf("GetByUserDate (missing): %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing day log, got %+v", got)
	}

	first := `[{"start":"2025-03-01T10:00:00Z","end":"2025-03-01T10:00:00Z"}]`
	if err := repo.Upsert(ctx, tx, &types.DayLog{
		ID:         uuid.New(),
		UserID:     u.ID,
		DateString: "2025-03-01",
		Sessions:   datatypes.JSON([]byte(first)),
	}); err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}

	second := `[{"start":"2025-03-01T10:00:00Z","end":"2025-03-01T10:05:00Z"}]`
	if err := repo.Upsert(ctx, tx, &types.DayLog{
		ID:         uuid.New(),
		UserID:     u.ID,
		DateString: "2025-03-01",
		Sessions:   datatypes.JSON([]byte(second)),
	}); err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}

	got, err = repo.GetByUserDate(ctx, tx, u.ID, "2025-03-01")
	if err != nil {
		t.Fatalf("GetByUserDate: %v", err)
	}
	if got == nil {
		t.Fatalf("expected day log row")
	}
	if string(got.Sessions) != second {
		t.Fatalf("sessions not replaced: %s", got.Sessions)
	}
}

func TestDayLogRepoGetByUsersDate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDayLogRepo(db, testutil.Logger(t))
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, 270388, "وكالة")
	a := testutil.SeedUser(t, ctx, tx, agency.ID, "roster_a", types.RoleJournalist)
	b := testutil.SeedUser(t, ctx, tx, agency.ID, "roster_b", types.RoleJournalist)

	testutil.SeedDayLog(t, ctx, tx, a.ID, "2025-03-01", `[]`)
	testutil.SeedDayLog(t, ctx, tx, b.ID, "2025-03-01", `[]`)
	testutil.SeedDayLog(t, ctx, tx, a.ID, "2025-03-02", `[]`)

	got, err := repo.GetByUsersDate(ctx, tx, []uuid.UUID{a.ID, b.ID}, "2025-03-01")
	if err != nil {
		t.Fatalf("GetByUsersDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 logs for the day, got %d", len(got))
	}

	got, err = repo.GetByUsersDate(ctx, tx, nil, "2025-03-01")
	if err != nil {
		t.Fatalf("GetByUsersDate (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty id list must return nothing, got %+v", got)
	}
}
