package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// tokenRepo defines the refresh token repository interface needed by auth service.
type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

// bonusAwarder grants the one-time signup bonus. Failures never fail signup.
type bonusAwarder interface {
	AwardSignupBonus(ctx context.Context, userID uuid.UUID) (bool, error)
	BonusPoints() int
}

// guestMigrator moves a guest's saved items onto a user account.
type guestMigrator interface {
	Migrate(ctx context.Context, guestID string, userID uuid.UUID) (saveditems.MigrateResult, error)
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	tokens   tokenRepo
	jwt      jwtManager
	bonus    bonusAwarder
	migrator guestMigrator
	cfg      config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	jwt jwtManager,
	bonus bonusAwarder,
	migrator guestMigrator,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		tokens:   tokens,
		jwt:      jwt,
		bonus:    bonus,
		migrator: migrator,
		cfg:      cfg,
	}
}

// issueTokens generates access and refresh tokens for the given user, stores
// the refresh token hash in DB, and returns an AuthResult.
func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, hashRefresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if _, err := s.tokens.Create(ctx, user.ID, hashRefresh, time.Now().Add(s.cfg.RefreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		User:         user,
	}, nil
}

// migrateGuestItems adopts a guest's saved items after signup or login.
// Best-effort: a failed migration is logged and the guest rows stay in place
// for the next attempt.
func (s *Service) migrateGuestItems(ctx context.Context, guestID string, userID uuid.UUID) *saveditems.MigrateResult {
	if guestID == "" {
		return nil
	}

	result, err := s.migrator.Migrate(ctx, guestID, userID)
	if err != nil {
		s.log.WarnContext(ctx, "guest item migration failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil
	}
	return &result
}

// ValidateToken validates an access token and returns the user ID.
// Returns ErrUnauthorized if the token is invalid or expired.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// CleanupExpiredTokens removes all expired refresh tokens from the database.
// Returns the number of tokens deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	count, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "token cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired tokens", slog.Int("count", count))
	}

	return count, nil
}
