package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/juniperhq/storefront-backend/internal/domain"
	"github.com/juniperhq/storefront-backend/pkg/ctxutil"
)

// ChangePassword replaces the authenticated user's password after verifying
// the current one, then revokes every refresh token so other sessions must
// log in again. A wrong current password and an account without a password
// credential (OAuth-only) are both validation errors: the caller is already
// authenticated, the input is what is wrong.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth.ChangePassword get user: %w", err)
	}

	if !user.HasPassword() {
		return domain.NewValidationError("current_password", "account has no password credential")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.NewValidationError("current_password", "incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("auth.ChangePassword update: %w", err)
	}

	if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.ChangePassword revoke sessions: %w", err)
	}

	s.log.InfoContext(ctx, "password changed", slog.String("user_id", userID.String()))
	return nil
}
