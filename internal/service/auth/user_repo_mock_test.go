package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc         func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, passwordHash string) error

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		GetByEmail []struct {
			Email string
		}
		Create []struct {
			User *domain.User
		}
		UpdatePassword []struct {
			ID           uuid.UUID
			PasswordHash string
		}
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		ID uuid.UUID
	}{ID: id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if mock.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, struct {
		Email string
	}{Email: email})
	mock.lock.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *userRepoMock) GetByEmailCalls() []struct {
	Email string
} {
	mock.lock.RLock()
	calls := mock.calls.GetByEmail
	mock.lock.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		User *domain.User
	}{User: user})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, user)
}

func (mock *userRepoMock) CreateCalls() []struct {
	User *domain.User
} {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if mock.UpdatePasswordFunc == nil {
		panic("userRepoMock.UpdatePasswordFunc: method is nil but userRepo.UpdatePassword was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdatePassword = append(mock.calls.UpdatePassword, struct {
		ID           uuid.UUID
		PasswordHash string
	}{ID: id, PasswordHash: passwordHash})
	mock.lock.Unlock()
	return mock.UpdatePasswordFunc(ctx, id, passwordHash)
}

func (mock *userRepoMock) UpdatePasswordCalls() []struct {
	ID           uuid.UUID
	PasswordHash string
} {
	mock.lock.RLock()
	calls := mock.calls.UpdatePassword
	mock.lock.RUnlock()
	return calls
}
