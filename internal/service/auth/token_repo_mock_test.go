package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

var _ tokenRepo = &tokenRepoMock{}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)

	calls struct {
		Create []struct {
			UserID    uuid.UUID
			TokenHash string
			ExpiresAt time.Time
		}
		GetByHash []struct {
			TokenHash string
		}
		RevokeByID []struct {
			ID uuid.UUID
		}
		RevokeAllByUser []struct {
			UserID uuid.UUID
		}
		DeleteExpired []struct{}
	}
	lock sync.RWMutex
}

func (mock *tokenRepoMock) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	if mock.CreateFunc == nil {
		panic("tokenRepoMock.CreateFunc: method is nil but tokenRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		UserID    uuid.UUID
		TokenHash string
		ExpiresAt time.Time
	}{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, userID, tokenHash, expiresAt)
}

func (mock *tokenRepoMock) CreateCalls() []struct {
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
} {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if mock.GetByHashFunc == nil {
		panic("tokenRepoMock.GetByHashFunc: method is nil but tokenRepo.GetByHash was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByHash = append(mock.calls.GetByHash, struct {
		TokenHash string
	}{TokenHash: tokenHash})
	mock.lock.Unlock()
	return mock.GetByHashFunc(ctx, tokenHash)
}

func (mock *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	if mock.RevokeByIDFunc == nil {
		panic("tokenRepoMock.RevokeByIDFunc: method is nil but tokenRepo.RevokeByID was just called")
	}
	mock.lock.Lock()
	mock.calls.RevokeByID = append(mock.calls.RevokeByID, struct {
		ID uuid.UUID
	}{ID: id})
	mock.lock.Unlock()
	return mock.RevokeByIDFunc(ctx, id)
}

func (mock *tokenRepoMock) RevokeByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.RevokeByID
	mock.lock.RUnlock()
	return calls
}

func (mock *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	if mock.RevokeAllByUserFunc == nil {
		panic("tokenRepoMock.RevokeAllByUserFunc: method is nil but tokenRepo.RevokeAllByUser was just called")
	}
	mock.lock.Lock()
	mock.calls.RevokeAllByUser = append(mock.calls.RevokeAllByUser, struct {
		UserID uuid.UUID
	}{UserID: userID})
	mock.lock.Unlock()
	return mock.RevokeAllByUserFunc(ctx, userID)
}

func (mock *tokenRepoMock) RevokeAllByUserCalls() []struct {
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.RevokeAllByUser
	mock.lock.RUnlock()
	return calls
}

func (mock *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	if mock.DeleteExpiredFunc == nil {
		panic("tokenRepoMock.DeleteExpiredFunc: method is nil but tokenRepo.DeleteExpired was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteExpired = append(mock.calls.DeleteExpired, struct{}{})
	mock.lock.Unlock()
	return mock.DeleteExpiredFunc(ctx)
}
