package request

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ requestRepo = &requestRepoMock{}

type requestRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListFunc         func(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, int, error)
	CreateFunc       func(ctx context.Context, req *domain.Request) error
	UpdateFunc       func(ctx context.Context, req *domain.Request) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.RequestFilter
		}
		Create []struct {
			Ctx context.Context
			Req *domain.Request
		}
		Update []struct {
			Ctx context.Context
			Req *domain.Request
		}
	}
	lockGetByID      sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockList         sync.RWMutex
	lockCreate       sync.RWMutex
	lockUpdate       sync.RWMutex
}

func (mock *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	if mock.GetByIDFunc == nil {
		panic("requestRepoMock.GetByIDFunc: method is nil but requestRepo.GetByID was just called")
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

func (mock *requestRepoMock) GetByIDCalls() []struct {
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

func (mock *requestRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	if mock.GetForUpdateFunc == nil {
		panic("requestRepoMock.GetForUpdateFunc: method is nil but requestRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *requestRepoMock) GetForUpdateCalls() []struct {
		Ctx context.Context
		ID  uuid.UUID
	} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetForUpdate.RLock()
	calls = mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *requestRepoMock) List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, int, error) {
	if mock.ListFunc == nil {
		panic("requestRepoMock.ListFunc: method is nil but requestRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.RequestFilter
	}{
		Ctx:    ctx,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *requestRepoMock) ListCalls() []struct {
		Ctx    context.Context
		Filter domain.RequestFilter
	} {
	var calls []struct {
		Ctx    context.Context
		Filter domain.RequestFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *requestRepoMock) Create(ctx context.Context, req *domain.Request) error {
	if mock.CreateFunc == nil {
		panic("requestRepoMock.CreateFunc: method is nil but requestRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req *domain.Request
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, req)
}

func (mock *requestRepoMock) CreateCalls() []struct {
		Ctx context.Context
		Req *domain.Request
	} {
	var calls []struct {
		Ctx context.Context
		Req *domain.Request
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *requestRepoMock) Update(ctx context.Context, req *domain.Request) error {
	if mock.UpdateFunc == nil {
		panic("requestRepoMock.UpdateFunc: method is nil but requestRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req *domain.Request
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, req)
}

func (mock *requestRepoMock) UpdateCalls() []struct {
		Ctx context.Context
		Req *domain.Request
	} {
	var calls []struct {
		Ctx context.Context
		Req *domain.Request
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
