package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/service/saveditems"
)

var _ bonusAwarder = &bonusAwarderMock{}

type bonusAwarderMock struct {
	AwardSignupBonusFunc func(ctx context.Context, userID uuid.UUID) (bool, error)
	BonusPointsFunc      func() int

	calls struct {
		AwardSignupBonus []struct {
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *bonusAwarderMock) AwardSignupBonus(ctx context.Context, userID uuid.UUID) (bool, error) {
	if mock.AwardSignupBonusFunc == nil {
		panic("bonusAwarderMock.AwardSignupBonusFunc: method is nil but bonusAwarder.AwardSignupBonus was just called")
	}
	mock.lock.Lock()
	mock.calls.AwardSignupBonus = append(mock.calls.AwardSignupBonus, struct {
		UserID uuid.UUID
	}{UserID: userID})
	mock.lock.Unlock()
	return mock.AwardSignupBonusFunc(ctx, userID)
}

func (mock *bonusAwarderMock) AwardSignupBonusCalls() []struct {
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.AwardSignupBonus
	mock.lock.RUnlock()
	return calls
}

func (mock *bonusAwarderMock) BonusPoints() int {
	if mock.BonusPointsFunc == nil {
		return 100
	}
	return mock.BonusPointsFunc()
}

var _ guestMigrator = &guestMigratorMock{}

type guestMigratorMock struct {
	MigrateFunc func(ctx context.Context, guestID string, userID uuid.UUID) (saveditems.MigrateResult, error)

	calls struct {
		Migrate []struct {
			GuestID string
			UserID  uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *guestMigratorMock) Migrate(ctx context.Context, guestID string, userID uuid.UUID) (saveditems.MigrateResult, error) {
	if mock.MigrateFunc == nil {
		panic("guestMigratorMock.MigrateFunc: method is nil but guestMigrator.Migrate was just called")
	}
	mock.lock.Lock()
	mock.calls.Migrate = append(mock.calls.Migrate, struct {
		GuestID string
		UserID  uuid.UUID
	}{GuestID: guestID, UserID: userID})
	mock.lock.Unlock()
	return mock.MigrateFunc(ctx, guestID, userID)
}

func (mock *guestMigratorMock) MigrateCalls() []struct {
	GuestID string
	UserID  uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.Migrate
	mock.lock.RUnlock()
	return calls
}
