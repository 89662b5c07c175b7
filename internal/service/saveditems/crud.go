package saveditems

import (
	"context"
	"fmt"
	"strings"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

// List returns the owner's saved items, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.SavedItem, error) {
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("saveditems.List: %w", err)
	}
	return items, nil
}

// Save adds a product to the owner's list.
// Returns ErrAlreadyExists if the owner already saved the product.
func (s *Service) Save(ctx context.Context, ownerID string, input SaveInput) (*domain.SavedItem, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.Create(ctx, &domain.SavedItem{
		OwnerID:   ownerID,
		ProductID: input.ProductID,
		Note:      input.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("saveditems.Save: %w", err)
	}
	return item, nil
}

// Delete removes a product from the owner's list.
// Returns ErrNotFound if the owner has no such product saved.
func (s *Service) Delete(ctx context.Context, ownerID, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.NewValidationError("product_id", "required")
	}

	if err := s.items.DeleteByOwnerAndProduct(ctx, ownerID, productID); err != nil {
		return fmt.Errorf("saveditems.Delete: %w", err)
	}
	return nil
}

// CleanupStaleGuestItems removes guest-owned items older than the retention
// window. This is a maintenance operation.
func (s *Service) CleanupStaleGuestItems(ctx context.Context, retentionDays int) (int, error) {
	count, err := s.items.DeleteStaleGuestItems(ctx, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("saveditems.CleanupStaleGuestItems: %w", err)
	}
	return count, nil
}
