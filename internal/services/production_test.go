package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/catalog"
	"github.com/presslog/newsroom-backend/internal/data/repos"
	"github.com/presslog/newsroom-backend/internal/data/repos/testutil"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
)

type productionFixture struct {
	tx     *gorm.DB
	svc    ProductionService
	agency *types.Agency
	writer *types.User
}

func newProductionFixture(t *testing.T, agencyID int64) *productionFixture {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	ctx := context.Background()

	agency := testutil.SeedAgency(t, ctx, tx, agencyID, "وكالة الإنتاج")
	writer := testutil.SeedUser(t, ctx, tx, agency.ID, "entry_writer", types.RoleJournalist)

	svc := NewProductionService(
		tx, log,
		repos.NewProductionRepo(tx, log),
		repos.NewUserRepo(tx, log),
		catalog.Load(log),
	)
	return &productionFixture{tx: tx, svc: svc, agency: agency, writer: writer}
}

func (f *productionFixture) ctxAs(u *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   u.ID,
		AgencyID: u.AgencyID,
		Role:     u.Role,
	})
}

func TestCreateEntryStampsIdentityAndDate(t *testing.T) {
	f := newProductionFixture(t, 808441)
	ctx := f.ctxAs(f.writer)

	entry, err := f.svc.CreateEntry(ctx, CreateEntryInput{
		Headline: "ارتفاع أسعار النفط عالمياً",
		Section:  "الاقتصاد",
		Platform: "الموقع الإلكتروني",
		Status:   "نشرت",
		URL:      "https://example.com/oil",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.JournalistID != f.writer.ID || entry.JournalistUsername != f.writer.Username {
		t.Fatalf("author identity not stamped: %+v", entry)
	}
	if entry.AgencyID != f.agency.ID {
		t.Fatalf("agency not stamped: %+v", entry)
	}
	if entry.DateString != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("date string mismatch: %s", entry.DateString)
	}

	listed, err := f.svc.ListEntries(ctx, "", "", "")
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != entry.ID {
		t.Fatalf("entry not listed: %+v", listed)
	}
}

func TestCreateEntryValidatesCatalog(t *testing.T) {
	f := newProductionFixture(t, 494230)
	ctx := f.ctxAs(f.writer)

	cases := []CreateEntryInput{
		{Headline: "بدون قسم", Section: "غير موجود", Platform: "الموقع الإلكتروني", Status: "نشرت"},
		{Headline: "بدون منصة", Section: "عام", Platform: "المذياع", Status: "نشرت"},
		{Headline: "بدون حالة", Section: "عام", Platform: "الموقع الإلكتروني", Status: "مؤجل"},
		{Headline: "", Section: "عام", Platform: "الموقع الإلكتروني", Status: "نشرت"},
	}
	for i, input := range cases {
		if _, err := f.svc.CreateEntry(ctx, input); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, input)
		}
	}
}

func TestDeleteEntryPermissions(t *testing.T) {
	f := newProductionFixture(t, 350917)
	ctx := f.ctxAs(f.writer)

	entry, err := f.svc.CreateEntry(ctx, CreateEntryInput{
		Headline: "خبر قابل للحذف",
		Section:  "عام",
		Platform: "فيسبوك",
		Status:   "مسودة",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	other := testutil.SeedUser(t, context.Background(), f.tx, f.agency.ID, "other_writer", types.RoleJournalist)
	if err := f.svc.DeleteEntry(f.ctxAs(other), entry.ID); err != ErrForbidden {
		t.Fatalf("another journalist deleting: got %v, want ErrForbidden", err)
	}

	editor := testutil.SeedUser(t, context.Background(), f.tx, f.agency.ID, "desk_editor", types.RoleEditor)
	if err := f.svc.DeleteEntry(f.ctxAs(editor), entry.ID); err != nil {
		t.Fatalf("editor delete: %v", err)
	}

	listed, err := f.svc.ListEntries(ctx, "", "", "")
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("entry still listed after delete: %+v", listed)
	}

	if err := f.svc.DeleteEntry(ctx, entry.ID); err != ErrNotFound {
		t.Fatalf("deleting a deleted entry: got %v, want ErrNotFound", err)
	}
}
