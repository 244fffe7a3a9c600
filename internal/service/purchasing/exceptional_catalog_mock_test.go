package purchasing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ exceptionalCatalog = &exceptionalCatalogMock{}

type exceptionalCatalogMock struct {
	GetProductsByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error)

	calls struct {
		GetProductsByIDs []struct {
			Ctx context.Context
			IDs []uuid.UUID
		}
	}
	lockGetProductsByIDs sync.RWMutex
}

func (mock *exceptionalCatalogMock) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error) {
	if mock.GetProductsByIDsFunc == nil {
		panic("exceptionalCatalogMock.GetProductsByIDsFunc: method is nil but exceptionalCatalog.GetProductsByIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		IDs []uuid.UUID
	}{
		Ctx: ctx,
		IDs: ids,
	}
	mock.lockGetProductsByIDs.Lock()
	mock.calls.GetProductsByIDs = append(mock.calls.GetProductsByIDs, callInfo)
	mock.lockGetProductsByIDs.Unlock()
	return mock.GetProductsByIDsFunc(ctx, ids)
}

func (mock *exceptionalCatalogMock) GetProductsByIDsCalls() []struct {
		Ctx context.Context
		IDs []uuid.UUID
	} {
	var calls []struct {
		Ctx context.Context
		IDs []uuid.UUID
	}
	mock.lockGetProductsByIDs.RLock()
	calls = mock.calls.GetProductsByIDs
	mock.lockGetProductsByIDs.RUnlock()
	return calls
}
