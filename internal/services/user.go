package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

var (
	ErrNoRequestData = errors.New("no request data in context")
	ErrForbidden     = errors.New("insufficient role")
	ErrNotFound      = errors.New("not found")
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	ListAgencyUsers(ctx context.Context) ([]*types.User, error)
	ApproveUser(ctx context.Context, userID uuid.UUID) error
	RemoveUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users[0], nil
}

func (us *userService) ListAgencyUsers(ctx context.Context) ([]*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	return us.userRepo.ListByAgency(ctx, nil, rd.AgencyID)
}

// ApproveUser flips a pending member to approved. Admin only, and only
// within the caller's own agency.
func (us *userService) ApproveUser(ctx context.Context, userID uuid.UUID) error {
	target, err := us.requireAdminAndTarget(ctx, userID)
	if err != nil {
		return err
	}
	return us.userRepo.SetApproved(ctx, nil, target.ID, true)
}

func (us *userService) RemoveUser(ctx context.Context, userID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return ErrNoRequestData
	}
	target, err := us.requireAdminAndTarget(ctx, userID)
	if err != nil {
		return err
	}
	if target.ID == rd.UserID {
		return fmt.Errorf("%w: admins cannot remove themselves", ErrForbidden)
	}
	return us.userRepo.DeleteByIDs(ctx, nil, []uuid.UUID{target.ID})
}

func (us *userService) requireAdminAndTarget(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrNoRequestData
	}
	if rd.Role != types.RoleAdmin {
		return nil, ErrForbidden
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load target user: %w", err)
	}
	if len(users) == 0 || users[0].AgencyID != rd.AgencyID {
		return nil, ErrNotFound
	}
	return users[0], nil
}
