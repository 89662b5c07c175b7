package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

// Signup creates a new user with email + password credentials, then runs the
// best-effort side effects: the one-time loyalty bonus and adoption of the
// caller's guest saved items. Neither side effect can fail the signup.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Signup hash password: %w", err)
	}
	hashStr := string(hash)

	// Email uniqueness is enforced by the DB constraint, not a pre-check,
	// so concurrent signups with the same email cannot both succeed.
	now := time.Now()
	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: &hashStr,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Signup: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Signup: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Signup issue tokens: %w", err)
	}

	result := &SignupResult{AuthResult: *tokens}

	awarded, err := s.bonus.AwardSignupBonus(ctx, user.ID)
	if err != nil {
		s.log.WarnContext(ctx, "signup bonus award failed",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	} else if awarded {
		result.Bonus = &BonusAward{Points: s.bonus.BonusPoints()}
	}

	result.Migration = s.migrateGuestItems(ctx, input.GuestID, user.ID)

	s.log.InfoContext(ctx, "user signed up",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
