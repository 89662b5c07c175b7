package saveditems

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

// MigrateResult reports what happened to each guest item during migration.
type MigrateResult struct {
	Migrated int
	Skipped  int
}

// Total returns the number of guest items the migration considered.
func (r MigrateResult) Total() int { return r.Migrated + r.Skipped }

// Migrate moves every saved item owned by guestID onto the user's account.
// Items whose product the user already saved are skipped, never merged, so
// the user's own copy (and its note) wins. Each move is a single guarded
// UPDATE, so a half-finished migration leaves every item either fully moved
// or still guest-owned; re-running is always safe and a second run returns
// {0,0}. Any leftover guest rows are deleted at the end.
func (s *Service) Migrate(ctx context.Context, guestID string, userID uuid.UUID) (MigrateResult, error) {
	var result MigrateResult

	// Anything without the guest prefix is not a migratable session.
	if !domain.IsGuestID(guestID) {
		return result, nil
	}

	items, err := s.items.ListByOwner(ctx, guestID)
	if err != nil {
		return result, fmt.Errorf("saveditems.Migrate list: %w", err)
	}
	if len(items) == 0 {
		return result, nil
	}

	newOwner := userID.String()
	for _, item := range items {
		err := s.items.ReassignOwner(ctx, item.ID, item.ProductID, newOwner)
		switch {
		case err == nil:
			result.Migrated++
		case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrNotFound):
			// User already has the product, or a concurrent run won the row.
			result.Skipped++
		default:
			return result, fmt.Errorf("saveditems.Migrate item %s: %w", item.ID, err)
		}
	}

	// Skipped items are guest rows the user does not need anymore.
	if _, err := s.items.DeleteAllByOwner(ctx, guestID); err != nil {
		return result, fmt.Errorf("saveditems.Migrate cleanup: %w", err)
	}

	s.log.InfoContext(ctx, "guest items migrated",
		slog.String("user_id", newOwner),
		slog.Int("migrated", result.Migrated),
		slog.Int("skipped", result.Skipped))

	return result, nil
}
