package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated storefront customer.
//
// PasswordHash is nil for OAuth-only accounts. Such accounts have no local
// password and cannot use the password-change flow.
type User struct {
	ID            uuid.UUID
	Email         string
	Name          string
	PasswordHash  *string
	OAuthProvider *string
	OAuthID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPassword reports whether the user has a local password set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
