// Package ratecounter implements the rate-limit counter store using PostgreSQL.
package ratecounter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juniperhq/storefront-backend/internal/adapter/postgres"
)

// Repo provides fixed-window counters shared across server instances.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new rate-counter repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Incr atomically increments the counter for key within the window starting
// at windowStart. A row left over from an earlier window is reset to 1 in the
// same statement, so concurrent requests never observe a torn reset. Returns
// the count after the increment and the window start the count belongs to.
func (r *Repo) Incr(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int, time.Time, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		count       int
		activeStart time.Time
	)
	err := q.QueryRow(ctx, `
		INSERT INTO rate_limit_counters (key, window_start, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (key) DO UPDATE
		SET count = CASE
		        WHEN rate_limit_counters.window_start < EXCLUDED.window_start THEN 1
		        ELSE rate_limit_counters.count + 1
		    END,
		    window_start = GREATEST(rate_limit_counters.window_start, EXCLUDED.window_start)
		RETURNING count, window_start`,
		key, windowStart).Scan(&count, &activeStart)
	if err != nil {
		return 0, time.Time{}, postgres.MapError(err, "rate_limit_counter", key)
	}
	return count, activeStart, nil
}

// DeleteExpired removes counters whose window ended more than maxAge ago.
// Returns the count of deleted rows.
func (r *Repo) DeleteExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		"DELETE FROM rate_limit_counters WHERE window_start < now() - make_interval(secs => $1)",
		maxAge.Seconds())
	if err != nil {
		return 0, postgres.MapError(err, "rate_limit_counter", "")
	}
	return int(tag.RowsAffected()), nil
}
