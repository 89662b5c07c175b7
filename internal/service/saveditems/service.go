// Package saveditems implements the guest/user saved-items list and the
// guest-to-user migration that runs when a guest signs up or logs in.
package saveditems

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

// itemRepo defines the saved-item repository interface needed by the service.
type itemRepo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.SavedItem, error)
	Create(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error)
	DeleteByOwnerAndProduct(ctx context.Context, ownerID, productID string) error
	ReassignOwner(ctx context.Context, itemID uuid.UUID, productID, newOwnerID string) error
	DeleteAllByOwner(ctx context.Context, ownerID string) (int, error)
	DeleteStaleGuestItems(ctx context.Context, retentionDays int) (int, error)
}

// Service implements saved-item operations keyed by the caller's owner id.
type Service struct {
	log   *slog.Logger
	items itemRepo
}

// NewService creates a new saved-items service instance.
func NewService(logger *slog.Logger, items itemRepo) *Service {
	return &Service{
		log:   logger.With("service", "saveditems"),
		items: items,
	}
}
