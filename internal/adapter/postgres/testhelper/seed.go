package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a password-credentialed user with a unique email.
// Returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	hash := "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth"
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedGuestID returns a fresh guest owner id. Nothing is persisted: guests
// exist only through the rows that reference them.
func SeedGuestID() string {
	return domain.GuestIDPrefix + uniqueSuffix() + uniqueSuffix()
}

// SeedSavedItem creates a saved item for the given owner and product.
// Returns the filled domain.SavedItem.
func SeedSavedItem(t *testing.T, pool *pgxpool.Pool, ownerID, productID string) domain.SavedItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.SavedItem{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		ProductID: productID,
		AddedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO saved_items (id, owner_id, product_id, added_at)
		 VALUES ($1, $2, $3, $4)`,
		item.ID, item.OwnerID, item.ProductID, item.AddedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSavedItem insert: %v", err)
	}

	return item
}

// SeedRefreshToken creates a refresh token for the user with the given hash,
// valid for 24 hours.
func SeedRefreshToken(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, tokenHash string) domain.RefreshToken {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	token := domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRefreshToken insert: %v", err)
	}

	return token
}
