package saveditems

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	ListByOwnerFunc             func(ctx context.Context, ownerID string) ([]domain.SavedItem, error)
	CreateFunc                  func(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error)
	DeleteByOwnerAndProductFunc func(ctx context.Context, ownerID, productID string) error
	ReassignOwnerFunc           func(ctx context.Context, itemID uuid.UUID, productID, newOwnerID string) error
	DeleteAllByOwnerFunc        func(ctx context.Context, ownerID string) (int, error)
	DeleteStaleGuestItemsFunc   func(ctx context.Context, retentionDays int) (int, error)

	calls struct {
		ListByOwner []struct {
			OwnerID string
		}
		Create []struct {
			Item *domain.SavedItem
		}
		DeleteByOwnerAndProduct []struct {
			OwnerID   string
			ProductID string
		}
		ReassignOwner []struct {
			ItemID     uuid.UUID
			ProductID  string
			NewOwnerID string
		}
		DeleteAllByOwner []struct {
			OwnerID string
		}
		DeleteStaleGuestItems []struct {
			RetentionDays int
		}
	}
	lock sync.RWMutex
}

func (mock *itemRepoMock) ListByOwner(ctx context.Context, ownerID string) ([]domain.SavedItem, error) {
	if mock.ListByOwnerFunc == nil {
		panic("itemRepoMock.ListByOwnerFunc: method is nil but itemRepo.ListByOwner was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByOwner = append(mock.calls.ListByOwner, struct {
		OwnerID string
	}{OwnerID: ownerID})
	mock.lock.Unlock()
	return mock.ListByOwnerFunc(ctx, ownerID)
}

func (mock *itemRepoMock) Create(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Item *domain.SavedItem
	}{Item: item})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *itemRepoMock) DeleteByOwnerAndProduct(ctx context.Context, ownerID, productID string) error {
	if mock.DeleteByOwnerAndProductFunc == nil {
		panic("itemRepoMock.DeleteByOwnerAndProductFunc: method is nil but itemRepo.DeleteByOwnerAndProduct was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteByOwnerAndProduct = append(mock.calls.DeleteByOwnerAndProduct, struct {
		OwnerID   string
		ProductID string
	}{OwnerID: ownerID, ProductID: productID})
	mock.lock.Unlock()
	return mock.DeleteByOwnerAndProductFunc(ctx, ownerID, productID)
}

func (mock *itemRepoMock) ReassignOwner(ctx context.Context, itemID uuid.UUID, productID, newOwnerID string) error {
	if mock.ReassignOwnerFunc == nil {
		panic("itemRepoMock.ReassignOwnerFunc: method is nil but itemRepo.ReassignOwner was just called")
	}
	mock.lock.Lock()
	mock.calls.ReassignOwner = append(mock.calls.ReassignOwner, struct {
		ItemID     uuid.UUID
		ProductID  string
		NewOwnerID string
	}{ItemID: itemID, ProductID: productID, NewOwnerID: newOwnerID})
	mock.lock.Unlock()
	return mock.ReassignOwnerFunc(ctx, itemID, productID, newOwnerID)
}

func (mock *itemRepoMock) ReassignOwnerCalls() []struct {
	ItemID     uuid.UUID
	ProductID  string
	NewOwnerID string
} {
	mock.lock.RLock()
	calls := mock.calls.ReassignOwner
	mock.lock.RUnlock()
	return calls
}

func (mock *itemRepoMock) DeleteAllByOwner(ctx context.Context, ownerID string) (int, error) {
	if mock.DeleteAllByOwnerFunc == nil {
		panic("itemRepoMock.DeleteAllByOwnerFunc: method is nil but itemRepo.DeleteAllByOwner was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteAllByOwner = append(mock.calls.DeleteAllByOwner, struct {
		OwnerID string
	}{OwnerID: ownerID})
	mock.lock.Unlock()
	return mock.DeleteAllByOwnerFunc(ctx, ownerID)
}

func (mock *itemRepoMock) DeleteAllByOwnerCalls() []struct {
	OwnerID string
} {
	mock.lock.RLock()
	calls := mock.calls.DeleteAllByOwner
	mock.lock.RUnlock()
	return calls
}

func (mock *itemRepoMock) DeleteStaleGuestItems(ctx context.Context, retentionDays int) (int, error) {
	if mock.DeleteStaleGuestItemsFunc == nil {
		panic("itemRepoMock.DeleteStaleGuestItemsFunc: method is nil but itemRepo.DeleteStaleGuestItems was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteStaleGuestItems = append(mock.calls.DeleteStaleGuestItems, struct {
		RetentionDays int
	}{RetentionDays: retentionDays})
	mock.lock.Unlock()
	return mock.DeleteStaleGuestItemsFunc(ctx, retentionDays)
}
