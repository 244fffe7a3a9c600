package purchasing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ supplierReader = &supplierReaderMock{}

type supplierReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *supplierReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	if mock.GetByIDFunc == nil {
		panic("supplierReaderMock.GetByIDFunc: method is nil but supplierReader.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *supplierReaderMock) GetByIDCalls() []struct {
		Ctx context.Context
		ID  uuid.UUID
	} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
