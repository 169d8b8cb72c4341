package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/presslog/newsroom-backend/internal/data/repos"
	types "github.com/presslog/newsroom-backend/internal/domain"
	"github.com/presslog/newsroom-backend/internal/pkg/requestdata"
	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnknownAgency      = errors.New("unknown agency code")
	ErrNotApproved        = errors.New("membership pending approval")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type JWTClaims struct {
	jwt.RegisteredClaims
	AgencyID int64  `json:"agency_id"`
	Role     string `json:"role"`
}

// RegisterInput either founds a new agency (AgencyName set) or joins an
// existing one by invite code (AgencyID set). Founders become approved
// admins; joiners start as unapproved journalists.
type RegisterInput struct {
	Username   string
	Password   string
	Name       string
	AgencyName string
	AgencyID   int64
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, username, password string) (string, string, *types.User, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	agencyRepo    repos.AgencyRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	agencyRepo repos.AgencyRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		agencyRepo:    agencyRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (as *authService) RegisterUser(ctx context.Context, input RegisterInput) (*types.User, error) {
	username := normalizeUsername(input.Username)
	name := strings.TrimSpace(input.Name)
	agencyName := strings.TrimSpace(input.AgencyName)

	if username == "" || input.Password == "" || name == "" {
		return nil, fmt.Errorf("username, password and name are required")
	}
	if agencyName == "" && input.AgencyID == 0 {
		return nil, fmt.Errorf("either an agency name or an invite code is required")
	}

	exists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hashed),
		Name:     name,
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if agencyName != "" {
			agencyID, err := as.newAgencyCode(ctx, tx)
			if err != nil {
				return err
			}
			if _, err := as.agencyRepo.Create(ctx, tx, []*types.Agency{
				{ID: agencyID, Name: agencyName},
			}); err != nil {
				return fmt.Errorf("create agency: %w", err)
			}
			user.AgencyID = agencyID
			user.Role = types.RoleAdmin
			user.Approved = true
		} else {
			ok, err := as.agencyRepo.IDExists(ctx, tx, input.AgencyID)
			if err != nil {
				return fmt.Errorf("check agency: %w", err)
			}
			if !ok {
				return ErrUnknownAgency
			}
			user.AgencyID = input.AgencyID
			user.Role = types.RoleJournalist
			user.Approved = false
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// newAgencyCode draws a random 6-digit code, retrying on the rare collision.
func (as *authService) newAgencyCode(ctx context.Context, tx *gorm.DB) (int64, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code := rand.Int64N(900000) + 100000
		exists, err := as.agencyRepo.IDExists(ctx, tx, code)
		if err != nil {
			return 0, fmt.Errorf("check agency code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return 0, fmt.Errorf("could not allocate an agency code")
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, string, *types.User, error) {
	username = normalizeUsername(username)

	users, err := as.userRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return "", "", nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", "", nil, ErrInvalidCredentials
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if !user.Approved {
		return "", "", nil, ErrNotApproved
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteExpiredByUserIDs(ctx, tx, []uuid.UUID{user.ID}, time.Now()); err != nil {
			return fmt.Errorf("prune expired tokens: %w", err)
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); err != nil {
			return fmt.Errorf("create user token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, user, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", ErrInvalidToken
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if err != nil {
			return fmt.Errorf("load refresh token: %w", err)
		}
		if len(foundTokens) == 0 {
			return ErrInvalidToken
		}
		existing := foundTokens[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return ErrInvalidToken
		}

		users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}
		if len(users) == 0 {
			return ErrInvalidToken
		}
		user := users[0]

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newToken}); err != nil {
			return fmt.Errorf("create rotated token: %w", err)
		}
		if err := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("delete rotated token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return ErrInvalidToken
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, err := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if err != nil {
			return fmt.Errorf("load token for logout: %w", err)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		ids := make([]uuid.UUID, 0, len(foundTokens))
		for _, t := range foundTokens {
			ids = append(ids, t.ID)
		}
		return as.userTokenRepo.DeleteByIDs(ctx, tx, ids)
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AgencyID: user.AgencyID,
		Role:     user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates the bearer token, checks it is still backed
// by a token row (logout revokes), and stashes the caller identity in the
// context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	foundTokens, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("load token row: %w", err)
	}
	if len(foundTokens) == 0 {
		return ctx, ErrInvalidToken
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: foundTokens[0].RefreshToken,
		UserID:       userID,
		AgencyID:     claims.AgencyID,
		Role:         claims.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
