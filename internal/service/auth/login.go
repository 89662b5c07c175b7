package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

// Login authenticates a user with email + password and adopts the caller's
// guest saved items best-effort. Returns ErrUnauthorized if the email is not
// found, the account has no password credential, or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	// OAuth-only accounts have no hash to compare against.
	if !user.HasPassword() {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
	}

	result := &LoginResult{AuthResult: *tokens}
	result.Migration = s.migrateGuestItems(ctx, input.GuestID, user.ID)

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
