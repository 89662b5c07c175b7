package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedItem is a product saved for later by a guest or an authenticated user.
// The owner is identified by the shared-key-space encoding (see OwnerID);
// (OwnerID, ProductID) is unique. Ownership is rewritten, never duplicated,
// when guest activity migrates to a user account.
type SavedItem struct {
	ID        uuid.UUID
	OwnerID   string
	ProductID string
	Note      *string
	AddedAt   time.Time
}
