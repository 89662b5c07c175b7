// Package token implements the RefreshToken repository using PostgreSQL.
package token

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juniperhq/storefront-backend/internal/adapter/postgres"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new refresh token and returns the persisted row.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Insert("refresh_tokens").
		Columns("user_id", "token_hash", "expires_at").
		Values(userID, tokenHash, expiresAt).
		Suffix("RETURNING id, user_id, token_hash, expires_at, created_at, revoked_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", userID.String())
	}

	var t domain.RefreshToken
	err = q.QueryRow(ctx, sql, args...).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", userID.String())
	}
	return &t, nil
}

// GetByHash returns an active (non-revoked, non-expired) refresh token by its hash.
// Returns domain.ErrNotFound if the token does not exist, is revoked, or is expired.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select("id", "user_id", "token_hash", "expires_at", "created_at", "revoked_at").
		From("refresh_tokens").
		Where(sq.Eq{"token_hash": tokenHash}).
		Where("revoked_at IS NULL").
		Where("expires_at > now()").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", "")
	}

	var t domain.RefreshToken
	err = q.QueryRow(ctx, sql, args...).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", "")
	}
	return &t, nil
}

// RevokeByID revokes a specific refresh token by setting revoked_at.
// Idempotent: revoking an already-revoked token is not an error.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Update("refresh_tokens").
		Set("revoked_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("revoked_at IS NULL").
		ToSql()
	if err != nil {
		return postgres.MapError(err, "refresh_token", id.String())
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "refresh_token", id.String())
	}
	return nil
}

// RevokeAllByUser revokes all active refresh tokens for the given user.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Update("refresh_tokens").
		Set("revoked_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		Where("revoked_at IS NULL").
		ToSql()
	if err != nil {
		return postgres.MapError(err, "refresh_token", userID.String())
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "refresh_token", userID.String())
	}
	return nil
}

// DeleteExpired removes all expired or revoked tokens from the database.
// Returns the count of deleted tokens.
// May delete many records; does not use a transaction.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at < now() OR revoked_at IS NOT NULL")
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", "")
	}
	return int(tag.RowsAffected()), nil
}
