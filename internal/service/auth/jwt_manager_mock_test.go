package auth

import (
	"sync"

	"github.com/google/uuid"
)

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, error)
	GenerateRefreshTokenFunc func() (string, string, error)

	calls struct {
		GenerateAccessToken []struct {
			UserID uuid.UUID
		}
		ValidateAccessToken []struct {
			Token string
		}
		GenerateRefreshToken []struct{}
	}
	lock sync.RWMutex
}

func (mock *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	if mock.GenerateAccessTokenFunc == nil {
		panic("jwtManagerMock.GenerateAccessTokenFunc: method is nil but jwtManager.GenerateAccessToken was just called")
	}
	mock.lock.Lock()
	mock.calls.GenerateAccessToken = append(mock.calls.GenerateAccessToken, struct {
		UserID uuid.UUID
	}{UserID: userID})
	mock.lock.Unlock()
	return mock.GenerateAccessTokenFunc(userID)
}

func (mock *jwtManagerMock) GenerateAccessTokenCalls() []struct {
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.GenerateAccessToken
	mock.lock.RUnlock()
	return calls
}

func (mock *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	if mock.ValidateAccessTokenFunc == nil {
		panic("jwtManagerMock.ValidateAccessTokenFunc: method is nil but jwtManager.ValidateAccessToken was just called")
	}
	mock.lock.Lock()
	mock.calls.ValidateAccessToken = append(mock.calls.ValidateAccessToken, struct {
		Token string
	}{Token: token})
	mock.lock.Unlock()
	return mock.ValidateAccessTokenFunc(token)
}

func (mock *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	if mock.GenerateRefreshTokenFunc == nil {
		panic("jwtManagerMock.GenerateRefreshTokenFunc: method is nil but jwtManager.GenerateRefreshToken was just called")
	}
	mock.lock.Lock()
	mock.calls.GenerateRefreshToken = append(mock.calls.GenerateRefreshToken, struct{}{})
	mock.lock.Unlock()
	return mock.GenerateRefreshTokenFunc()
}
