package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyTransactionKind classifies entries in the loyalty ledger.
type LoyaltyTransactionKind string

const (
	LoyaltySignupBonus LoyaltyTransactionKind = "SIGNUP_BONUS"
	LoyaltyAdjustment  LoyaltyTransactionKind = "ADJUSTMENT"
)

func (k LoyaltyTransactionKind) String() string { return string(k) }

func (k LoyaltyTransactionKind) IsValid() bool {
	switch k {
	case LoyaltySignupBonus, LoyaltyAdjustment:
		return true
	}
	return false
}

// LoyaltyAccount holds a user's point balance. Created lazily on first award.
type LoyaltyAccount struct {
	UserID        uuid.UUID
	PointsBalance int
	UpdatedAt     time.Time
}

// LoyaltyTransaction is one ledger entry. At most one SIGNUP_BONUS row may
// exist per user; the storage layer enforces this with a partial unique
// index, which is what makes the award idempotent under concurrent signups.
type LoyaltyTransaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      LoyaltyTransactionKind
	Points    int
	CreatedAt time.Time
}
