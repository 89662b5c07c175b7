// Package loyalty implements the loyalty ledger repository using PostgreSQL.
package loyalty

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juniperhq/storefront-backend/internal/adapter/postgres"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides loyalty-ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new loyalty repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// InsertSignupBonus records a signup-bonus transaction for the user.
// The partial unique index on (user_id) for signup bonuses makes this
// idempotent: a second call is a no-op and returns inserted=false.
func (r *Repo) InsertSignupBonus(ctx context.Context, userID uuid.UUID, points int) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Insert("loyalty_transactions").
		Columns("user_id", "kind", "points").
		Values(userID, domain.LoyaltySignupBonus, points).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, postgres.MapError(err, "loyalty_transaction", userID.String())
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "loyalty_transaction", userID.String())
	}
	return tag.RowsAffected() > 0, nil
}

// InsertAdjustment records a manual points adjustment for the user.
func (r *Repo) InsertAdjustment(ctx context.Context, userID uuid.UUID, points int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Insert("loyalty_transactions").
		Columns("user_id", "kind", "points").
		Values(userID, domain.LoyaltyAdjustment, points).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "loyalty_transaction", userID.String())
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "loyalty_transaction", userID.String())
	}
	return nil
}

// AddPoints upserts the user's loyalty account, adding delta to the balance.
// A negative delta that would drive the balance below zero fails the balance
// check and maps to domain.ErrValidation.
func (r *Repo) AddPoints(ctx context.Context, userID uuid.UUID, delta int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO loyalty_accounts (user_id, points_balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET points_balance = loyalty_accounts.points_balance + EXCLUDED.points_balance,
		    updated_at = now()`,
		userID, delta)
	if err != nil {
		return postgres.MapError(err, "loyalty_account", userID.String())
	}
	return nil
}

// GetAccount returns the user's loyalty account. A user with no recorded
// transactions has no account row; that maps to domain.ErrNotFound.
func (r *Repo) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.LoyaltyAccount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select("user_id", "points_balance", "updated_at").
		From("loyalty_accounts").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "loyalty_account", userID.String())
	}

	var acc domain.LoyaltyAccount
	err = q.QueryRow(ctx, sql, args...).
		Scan(&acc.UserID, &acc.PointsBalance, &acc.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "loyalty_account", userID.String())
	}
	return &acc, nil
}

// ListTransactions returns the user's loyalty transactions, newest first.
func (r *Repo) ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.LoyaltyTransaction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select("id", "user_id", "kind", "points", "created_at").
		From("loyalty_transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "loyalty_transaction", userID.String())
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "loyalty_transaction", userID.String())
	}
	defer rows.Close()

	txs := make([]domain.LoyaltyTransaction, 0)
	for rows.Next() {
		var t domain.LoyaltyTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.Points, &t.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "loyalty_transaction", userID.String())
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "loyalty_transaction", userID.String())
	}
	return txs, nil
}
