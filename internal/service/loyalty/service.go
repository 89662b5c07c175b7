// Package loyalty implements the points ledger: the one-time signup bonus
// and balance reads.
package loyalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/config"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

// ledgerRepo defines the loyalty repository interface needed by the service.
type ledgerRepo interface {
	InsertSignupBonus(ctx context.Context, userID uuid.UUID, points int) (bool, error)
	AddPoints(ctx context.Context, userID uuid.UUID, delta int) error
	GetAccount(ctx context.Context, userID uuid.UUID) (*domain.LoyaltyAccount, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.LoyaltyTransaction, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements loyalty-ledger operations.
type Service struct {
	log    *slog.Logger
	ledger ledgerRepo
	tx     txManager
	cfg    config.LoyaltyConfig
}

// NewService creates a new loyalty service instance.
func NewService(logger *slog.Logger, ledger ledgerRepo, tx txManager, cfg config.LoyaltyConfig) *Service {
	return &Service{
		log:    logger.With("service", "loyalty"),
		ledger: ledger,
		tx:     tx,
		cfg:    cfg,
	}
}

// AwardSignupBonus grants the one-time signup bonus to the user. The ledger
// row and the balance update commit together; the partial unique index on
// signup-bonus rows makes a repeat (or concurrent) award a no-op. Returns
// whether the bonus was awarded by this call.
func (s *Service) AwardSignupBonus(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.cfg.SignupBonusPoints <= 0 {
		return false, nil
	}

	var awarded bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inserted, err := s.ledger.InsertSignupBonus(txCtx, userID, s.cfg.SignupBonusPoints)
		if err != nil {
			return fmt.Errorf("insert bonus: %w", err)
		}
		if !inserted {
			return nil
		}

		if err := s.ledger.AddPoints(txCtx, userID, s.cfg.SignupBonusPoints); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		awarded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("loyalty.AwardSignupBonus: %w", err)
	}

	if awarded {
		s.log.InfoContext(ctx, "signup bonus awarded",
			slog.String("user_id", userID.String()),
			slog.Int("points", s.cfg.SignupBonusPoints))
	}
	return awarded, nil
}

// BonusPoints returns the configured signup bonus size.
func (s *Service) BonusPoints() int { return s.cfg.SignupBonusPoints }

// GetAccount returns the user's loyalty account. A user who has never earned
// points gets a zero-balance account rather than an error.
func (s *Service) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.LoyaltyAccount, error) {
	acc, err := s.ledger.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.LoyaltyAccount{UserID: userID}, nil
		}
		return nil, fmt.Errorf("loyalty.GetAccount: %w", err)
	}
	return acc, nil
}

// History returns the user's ledger entries, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]domain.LoyaltyTransaction, error) {
	txs, err := s.ledger.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loyalty.History: %w", err)
	}
	return txs, nil
}
