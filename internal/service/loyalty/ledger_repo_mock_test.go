package loyalty

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

var _ ledgerRepo = &ledgerRepoMock{}

type ledgerRepoMock struct {
	InsertSignupBonusFunc func(ctx context.Context, userID uuid.UUID, points int) (bool, error)
	AddPointsFunc         func(ctx context.Context, userID uuid.UUID, delta int) error
	GetAccountFunc        func(ctx context.Context, userID uuid.UUID) (*domain.LoyaltyAccount, error)
	ListTransactionsFunc  func(ctx context.Context, userID uuid.UUID) ([]domain.LoyaltyTransaction, error)

	calls struct {
		InsertSignupBonus []struct {
			UserID uuid.UUID
			Points int
		}
		AddPoints []struct {
			UserID uuid.UUID
			Delta  int
		}
	}
	lock sync.RWMutex
}

func (mock *ledgerRepoMock) InsertSignupBonus(ctx context.Context, userID uuid.UUID, points int) (bool, error) {
	if mock.InsertSignupBonusFunc == nil {
		panic("ledgerRepoMock.InsertSignupBonusFunc: method is nil but ledgerRepo.InsertSignupBonus was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertSignupBonus = append(mock.calls.InsertSignupBonus, struct {
		UserID uuid.UUID
		Points int
	}{UserID: userID, Points: points})
	mock.lock.Unlock()
	return mock.InsertSignupBonusFunc(ctx, userID, points)
}

func (mock *ledgerRepoMock) AddPoints(ctx context.Context, userID uuid.UUID, delta int) error {
	if mock.AddPointsFunc == nil {
		panic("ledgerRepoMock.AddPointsFunc: method is nil but ledgerRepo.AddPoints was just called")
	}
	mock.lock.Lock()
	mock.calls.AddPoints = append(mock.calls.AddPoints, struct {
		UserID uuid.UUID
		Delta  int
	}{UserID: userID, Delta: delta})
	mock.lock.Unlock()
	return mock.AddPointsFunc(ctx, userID, delta)
}

func (mock *ledgerRepoMock) AddPointsCalls() []struct {
	UserID uuid.UUID
	Delta  int
} {
	mock.lock.RLock()
	calls := mock.calls.AddPoints
	mock.lock.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.LoyaltyAccount, error) {
	if mock.GetAccountFunc == nil {
		panic("ledgerRepoMock.GetAccountFunc: method is nil but ledgerRepo.GetAccount was just called")
	}
	return mock.GetAccountFunc(ctx, userID)
}

func (mock *ledgerRepoMock) ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.LoyaltyTransaction, error) {
	if mock.ListTransactionsFunc == nil {
		panic("ledgerRepoMock.ListTransactionsFunc: method is nil but ledgerRepo.ListTransactions was just called")
	}
	return mock.ListTransactionsFunc(ctx, userID)
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		return fn(ctx)
	}
	return mock.RunInTxFunc(ctx, fn)
}
