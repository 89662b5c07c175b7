// Package user implements the User repository using PostgreSQL.
package user

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

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	columns    = []string{"id", "email", "name", "password_hash", "oauth_provider", "oauth_id", "created_at", "updated_at"}
	columnList = strings.Join(columns, ", ")
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select(columns...).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}

	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select(columns...).From("users").Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}

	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
// Returns domain.ErrAlreadyExists when the email is taken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Insert("users").
		Columns(columns...).
		Values(u.ID, u.Email, u.Name, u.PasswordHash, u.OAuthProvider, u.OAuthID, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING " + columnList).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID.String())
	}

	created, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID.String())
	}
	return created, nil
}

// UpdatePassword replaces the user's password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id.String())
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash,
		&u.OAuthProvider, &u.OAuthID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
