package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	"github.com/presslog/newsroom-backend/internal/data/repos/testutil"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
)

func newAuthService(t *testing.T) (AuthService, repos.UserRepo) {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	tokenRepo := repos.NewUserTokenRepo(tx, log)
	agencyRepo := repos.NewAgencyRepo(tx, log)
	svc := NewAuthService(tx, log, userRepo, tokenRepo, agencyRepo, "test-secret", 15*time.Minute, 24*time.Hour)
	return svc, userRepo
}

func TestRegisterFounderCreatesAgencyAdmin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{
		Username:   "Founder",
		Password:   "secret123",
		Name:       "رئيس التحرير",
		AgencyName: "وكالة الغد",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Username != "founder" {
		t.Fatalf("username not normalized: %s", user.Username)
	}
	if user.Role != types.RoleAdmin || !user.Approved {
		t.Fatalf("founder must be an approved admin: %+v", user)
	}
	if user.AgencyID < 100000 || user.AgencyID > 999999 {
		t.Fatalf("agency code must be 6 digits, got %d", user.AgencyID)
	}
}

func TestRegisterJoinerIsPendingJournalist(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	founder, err := svc.RegisterUser(ctx, RegisterInput{
		Username:   "join_founder",
		Password:   "secret123",
		Name:       "مدير",
		AgencyName: "وكالة الانضمام",
	})
	if err != nil {
		t.Fatalf("RegisterUser (founder): %v", err)
	}

	joiner, err := svc.RegisterUser(ctx, RegisterInput{
		Username: "join_member",
		Password: "secret123",
		Name:     "صحفي جديد",
		AgencyID: founder.AgencyID,
	})
	if err != nil {
		t.Fatalf("RegisterUser (joiner): %v", err)
	}
	if joiner.Role != types.RoleJournalist || joiner.Approved {
		t.Fatalf("joiner must be a pending journalist: %+v", joiner)
	}
	if joiner.AgencyID != founder.AgencyID {
		t.Fatalf("joiner landed in the wrong agency: %d vs %d", joiner.AgencyID, founder.AgencyID)
	}

	_, err = svc.RegisterUser(ctx, RegisterInput{
		Username: "join_nowhere",
		Password: "secret123",
		Name:     "تائه",
		AgencyID: 111111,
	})
	if !errors.Is(err, ErrUnknownAgency) {
		t.Fatalf("bad invite code: got %v, want ErrUnknownAgency", err)
	}

	_, err = svc.RegisterUser(ctx, RegisterInput{
		Username: "JOIN_MEMBER",
		Password: "secret123",
		Name:     "مكرر",
		AgencyID: founder.AgencyID,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v, want ErrUsernameTaken", err)
	}
}

func TestLoginRejectsPendingAndBadCredentials(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	founder, err := svc.RegisterUser(ctx, RegisterInput{
		Username:   "login_admin",
		Password:   "secret123",
		Name:       "مدير",
		AgencyName: "وكالة الدخول",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	if _, _, _, err := svc.LoginUser(ctx, "login_admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.LoginUser(ctx, "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", err)
	}

	pending, err := svc.RegisterUser(ctx, RegisterInput{
		Username: "login_pending",
		Password: "secret123",
		Name:     "معلق",
		AgencyID: founder.AgencyID,
	})
	if err != nil {
		t.Fatalf("RegisterUser (pending): %v", err)
	}
	if _, _, _, err := svc.LoginUser(ctx, "login_pending", "secret123"); !errors.Is(err, ErrNotApproved) {
		t.Fatalf("pending member: got %v, want ErrNotApproved", err)
	}

	if err := userRepo.SetApproved(ctx, nil, pending.ID, true); err != nil {
		t.Fatalf("SetApproved: %v", err)
	}
	access, refresh, user, err := svc.LoginUser(ctx, "login_pending", "secret123")
	if err != nil {
		t.Fatalf("LoginUser after approval: %v", err)
	}
	if access == "" || refresh == "" || user.ID != pending.ID {
		t.Fatalf("unexpected login result: %q %q %+v", access, refresh, user)
	}
}

func TestTokenLifecycle(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterInput{
		Username:   "lifecycle",
		Password:   "secret123",
		Name:       "مدير",
		AgencyName: "وكالة الدورة",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	access, refresh, user, err := svc.LoginUser(ctx, "lifecycle", "secret123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID || rd.AgencyID != user.AgencyID || rd.Role != types.RoleAdmin {
		t.Fatalf("request data mismatch: %+v", rd)
	}
	if rd.RefreshToken != refresh {
		t.Fatalf("refresh token not attached to context")
	}

	newAccess, newRefresh, err := svc.RefreshUser(authedCtx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newAccess == "" || newRefresh == "" || newRefresh == refresh {
		t.Fatalf("refresh must rotate tokens: %q %q", newAccess, newRefresh)
	}

	// the rotated-out access token no longer has a backing row
	if _, err := svc.SetContextFromToken(ctx, access); err == nil {
		t.Fatalf("old access token must be rejected after rotation")
	}

	authedCtx, err = svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("SetContextFromToken (rotated): %v", err)
	}
	if err := svc.LogoutUser(authedCtx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, newAccess); err == nil {
		t.Fatalf("token must be rejected after logout")
	}
}
