// Package saveditem implements the SavedItem repository using PostgreSQL.
package saveditem

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juniperhq/storefront-backend/internal/adapter/postgres"
	"github.com/juniperhq/storefront-backend/internal/domain"
)

var (
	builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	columns = []string{"id", "owner_id", "product_id", "note", "added_at"}

	columnList = strings.Join(columns, ", ")
)

// Repo provides saved-item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved-item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByOwner returns all saved items for the given owner, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.SavedItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select(columns...).
		From("saved_items").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("added_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "saved_item", ownerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "saved_item", ownerID)
	}
	defer rows.Close()

	items := make([]domain.SavedItem, 0)
	for rows.Next() {
		var it domain.SavedItem
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.ProductID, &it.Note, &it.AddedAt); err != nil {
			return nil, postgres.MapError(err, "saved_item", ownerID)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "saved_item", ownerID)
	}
	return items, nil
}

// Create inserts a saved item. Returns domain.ErrAlreadyExists when the owner
// already has the product saved.
func (r *Repo) Create(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Insert("saved_items").
		Columns("owner_id", "product_id", "note").
		Values(item.OwnerID, item.ProductID, item.Note).
		Suffix("RETURNING " + columnList).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "saved_item", item.ProductID)
	}

	var created domain.SavedItem
	err = q.QueryRow(ctx, sql, args...).
		Scan(&created.ID, &created.OwnerID, &created.ProductID, &created.Note, &created.AddedAt)
	if err != nil {
		return nil, postgres.MapError(err, "saved_item", item.ProductID)
	}
	return &created, nil
}

// DeleteByOwnerAndProduct removes a single saved item. Returns
// domain.ErrNotFound if the owner has no such product saved.
func (r *Repo) DeleteByOwnerAndProduct(ctx context.Context, ownerID, productID string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Delete("saved_items").
		Where(sq.Eq{"owner_id": ownerID, "product_id": productID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "saved_item", productID)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "saved_item", productID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "saved_item", productID)
	}
	return nil
}

// ReassignOwner moves a single saved item to a new owner. The NOT EXISTS
// guard keeps the statement a per-row no-op when the new owner already has
// the product; a raced duplicate still surfaces as domain.ErrAlreadyExists
// through the unique constraint. Returns domain.ErrNotFound when nothing was
// updated (item gone or product already owned).
func (r *Repo) ReassignOwner(ctx context.Context, itemID uuid.UUID, productID, newOwnerID string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE saved_items SET owner_id = $2
		WHERE id = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM saved_items WHERE owner_id = $2 AND product_id = $3
		  )`,
		itemID, newOwnerID, productID)
	if err != nil {
		return postgres.MapError(err, "saved_item", itemID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "saved_item", itemID.String())
	}
	return nil
}

// DeleteAllByOwner removes every saved item belonging to the given owner and
// returns how many were deleted.
func (r *Repo) DeleteAllByOwner(ctx context.Context, ownerID string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Delete("saved_items").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "saved_item", ownerID)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "saved_item", ownerID)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteStaleGuestItems removes saved items belonging to guest owners that
// have not been touched for the given retention interval. Returns the count
// of deleted items.
func (r *Repo) DeleteStaleGuestItems(ctx context.Context, retentionDays int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		"DELETE FROM saved_items WHERE owner_id LIKE $1 AND added_at < now() - make_interval(days => $2)",
		domain.GuestIDPrefix+"%", retentionDays)
	if err != nil {
		return 0, postgres.MapError(err, "saved_item", "")
	}
	return int(tag.RowsAffected()), nil
}
