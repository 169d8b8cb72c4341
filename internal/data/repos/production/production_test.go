package production

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/presslog/newsroom-backend/internal/data/repos/testutil"
	types "github.com/presslog/newsroom-backend/internal/domain"
)

func TestProductionRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProductionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, 210045, "وكالة")
	journalist := testutil.SeedUser(t, ctx, tx, agency.ID, "prod_writer", types.RoleJournalist)

	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	created, err := repo.Create(ctx, tx, []*types.ProductionEntry{
		{
			ID:                 uuid.New(),
			AgencyID:           agency.ID,
			JournalistID:       journalist.ID,
			JournalistName:     journalist.Name,
			JournalistUsername: journalist.Username,
			Headline:           "افتتاح المعرض الدولي للكتاب",
			Section:            "الفن والثقافة",
			Platform:           "الموقع الإلكتروني",
			Status:             "نشرت",
			DateString:         "2025-03-01",
			Timestamp:          at,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 entry, got %d", len(created))
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Headline != created[0].Headline {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}
}

func TestProductionRepoListByAgency(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProductionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	a := testutil.SeedAgency(t, ctx, tx, 330871, "الوكالة أ")
	b := testutil.SeedAgency(t, ctx, tx, 612930, "الوكالة ب")
	writer := testutil.SeedUser(t, ctx, tx, a.ID, "lister", types.RoleJournalist)
	other := testutil.SeedUser(t, ctx, tx, b.ID, "outsider", types.RoleJournalist)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	testutil.SeedProductionEntry(t, ctx, tx, a.ID, writer, "نتائج الدوري الممتاز", "الرياضة", base)
	testutil.SeedProductionEntry(t, ctx, tx, a.ID, writer, "أسعار صرف العملات", "الاقتصاد", base.Add(time.Hour))
	testutil.SeedProductionEntry(t, ctx, tx, b.ID, other, "خبر من وكالة أخرى", "الرياضة", base)

	all, err := repo.ListByAgency(ctx, tx, a.ID, ListFilter{})
	if err != nil {
		t.Fatalf("ListByAgency: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if !all[0].Timestamp.After(all[1].Timestamp) {
		t.Fatalf("expected newest first: %+v", all)
	}

	bySection, err := repo.ListByAgency(ctx, tx, a.ID, ListFilter{Section: "الرياضة"})
	if err != nil {
		t.Fatalf("ListByAgency (section): %v", err)
	}
	if len(bySection) != 1 || bySection[0].Section != "الرياضة" {
		t.Fatalf("section filter: unexpected result: %+v", bySection)
	}

	bySearch, err := repo.ListByAgency(ctx, tx, a.ID, ListFilter{Search: "الدوري"})
	if err != nil {
		t.Fatalf("ListByAgency (search): %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Headline != "نتائج الدوري الممتاز" {
		t.Fatalf("search filter: unexpected result: %+v", bySearch)
	}

	byWriter, err := repo.ListByAgency(ctx, tx, a.ID, ListFilter{Search: "lister"})
	if err != nil {
		t.Fatalf("ListByAgency (search username): %v", err)
	}
	if len(byWriter) != 2 {
		t.Fatalf("search by username: expected 2, got %d", len(byWriter))
	}
}

func TestProductionRepoCountsAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProductionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, 480556, "وكالة")
	writer := testutil.SeedUser(t, ctx, tx, agency.ID, "counter", types.RoleJournalist)

	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	e1 := testutil.SeedProductionEntry(t, ctx, tx, agency.ID, writer, "خبر أول", "عام", day1)
	testutil.SeedProductionEntry(t, ctx, tx, agency.ID, writer, "خبر ثان", "عام", day2)

	total, err := repo.CountByAgency(ctx, tx, agency.ID)
	if err != nil {
		t.Fatalf("CountByAgency: %v", err)
	}
	if total != 2 {
		t.Fatalf("CountByAgency: got %d, want 2", total)
	}

	today, err := repo.CountByAgencyDate(ctx, tx, agency.ID, "2025-03-02")
	if err != nil {
		t.Fatalf("CountByAgencyDate: %v", err)
	}
	if today != 1 {
		t.Fatalf("CountByAgencyDate: got %d, want 1", today)
	}

	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{e1.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	total, err = repo.CountByAgency(ctx, tx, agency.ID)
	if err != nil {
		t.Fatalf("CountByAgency after delete: %v", err)
	}
	if total != 1 {
		t.Fatalf("soft delete must hide the row: got %d, want 1", total)
	}
}
