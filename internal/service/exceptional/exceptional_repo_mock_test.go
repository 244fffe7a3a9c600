package exceptional

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ exceptionalRepo = &exceptionalRepoMock{}

type exceptionalRepoMock struct {
	FindOrCreateProductFunc func(ctx context.Context, name string, brand *string) (domain.ExceptionalProduct, error)
	GetProductsByIDsFunc    func(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error)
	SearchProductsFunc      func(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error)
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error)
	GetForUpdateFunc        func(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error)
	ListFunc                func(ctx context.Context, filter domain.ExceptionalFilter) ([]domain.ExceptionalRequest, int, error)
	CreateFunc              func(ctx context.Context, req *domain.ExceptionalRequest) error
	UpdateFunc              func(ctx context.Context, req *domain.ExceptionalRequest) error
	InsertAllocationsFunc   func(ctx context.Context, allocations []domain.ExceptionalAllocation) error
	ListAllocationsFunc     func(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error)
	AllocatedOnOrderFunc    func(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int, error)

	calls struct {
		FindOrCreateProduct []struct {
			Ctx   context.Context
			Name  string
			Brand *string
		}
		GetProductsByIDs []struct {
			Ctx context.Context
			IDs []uuid.UUID
		}
		SearchProducts []struct {
			Ctx    context.Context
			Search string
			Limit  int
		}
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
			Filter domain.ExceptionalFilter
		}
		Create []struct {
			Ctx context.Context
			Req *domain.ExceptionalRequest
		}
		Update []struct {
			Ctx context.Context
			Req *domain.ExceptionalRequest
		}
		InsertAllocations []struct {
			Ctx         context.Context
			Allocations []domain.ExceptionalAllocation
		}
		ListAllocations []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		AllocatedOnOrder []struct {
			Ctx     context.Context
			OrderID uuid.UUID
		}
	}
	lockFindOrCreateProduct sync.RWMutex
	lockGetProductsByIDs    sync.RWMutex
	lockSearchProducts      sync.RWMutex
	lockGetByID             sync.RWMutex
	lockGetForUpdate        sync.RWMutex
	lockList                sync.RWMutex
	lockCreate              sync.RWMutex
	lockUpdate              sync.RWMutex
	lockInsertAllocations   sync.RWMutex
	lockListAllocations     sync.RWMutex
	lockAllocatedOnOrder    sync.RWMutex
}

func (mock *exceptionalRepoMock) FindOrCreateProduct(ctx context.Context, name string, brand *string) (domain.ExceptionalProduct, error) {
	if mock.FindOrCreateProductFunc == nil {
		panic("exceptionalRepoMock.FindOrCreateProductFunc: method is nil but exceptionalRepo.FindOrCreateProduct was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Name  string
		Brand *string
	}{
		Ctx:   ctx,
		Name:  name,
		Brand: brand,
	}
	mock.lockFindOrCreateProduct.Lock()
	mock.calls.FindOrCreateProduct = append(mock.calls.FindOrCreateProduct, callInfo)
	mock.lockFindOrCreateProduct.Unlock()
	return mock.FindOrCreateProductFunc(ctx, name, brand)
}

func (mock *exceptionalRepoMock) FindOrCreateProductCalls() []struct {
		Ctx   context.Context
		Name  string
		Brand *string
	} {
	var calls []struct {
		Ctx   context.Context
		Name  string
		Brand *string
	}
	mock.lockFindOrCreateProduct.RLock()
	calls = mock.calls.FindOrCreateProduct
	mock.lockFindOrCreateProduct.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error) {
	if mock.GetProductsByIDsFunc == nil {
		panic("exceptionalRepoMock.GetProductsByIDsFunc: method is nil but exceptionalRepo.GetProductsByIDs was just called")
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

func (mock *exceptionalRepoMock) GetProductsByIDsCalls() []struct {
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

func (mock *exceptionalRepoMock) SearchProducts(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error) {
	if mock.SearchProductsFunc == nil {
		panic("exceptionalRepoMock.SearchProductsFunc: method is nil but exceptionalRepo.SearchProducts was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Search string
		Limit  int
	}{
		Ctx:    ctx,
		Search: search,
		Limit:  limit,
	}
	mock.lockSearchProducts.Lock()
	mock.calls.SearchProducts = append(mock.calls.SearchProducts, callInfo)
	mock.lockSearchProducts.Unlock()
	return mock.SearchProductsFunc(ctx, search, limit)
}

func (mock *exceptionalRepoMock) SearchProductsCalls() []struct {
		Ctx    context.Context
		Search string
		Limit  int
	} {
	var calls []struct {
		Ctx    context.Context
		Search string
		Limit  int
	}
	mock.lockSearchProducts.RLock()
	calls = mock.calls.SearchProducts
	mock.lockSearchProducts.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error) {
	if mock.GetByIDFunc == nil {
		panic("exceptionalRepoMock.GetByIDFunc: method is nil but exceptionalRepo.GetByID was just called")
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

func (mock *exceptionalRepoMock) GetByIDCalls() []struct {
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

func (mock *exceptionalRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error) {
	if mock.GetForUpdateFunc == nil {
		panic("exceptionalRepoMock.GetForUpdateFunc: method is nil but exceptionalRepo.GetForUpdate was just called")
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

func (mock *exceptionalRepoMock) GetForUpdateCalls() []struct {
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

func (mock *exceptionalRepoMock) List(ctx context.Context, filter domain.ExceptionalFilter) ([]domain.ExceptionalRequest, int, error) {
	if mock.ListFunc == nil {
		panic("exceptionalRepoMock.ListFunc: method is nil but exceptionalRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.ExceptionalFilter
	}{
		Ctx:    ctx,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *exceptionalRepoMock) ListCalls() []struct {
		Ctx    context.Context
		Filter domain.ExceptionalFilter
	} {
	var calls []struct {
		Ctx    context.Context
		Filter domain.ExceptionalFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) Create(ctx context.Context, req *domain.ExceptionalRequest) error {
	if mock.CreateFunc == nil {
		panic("exceptionalRepoMock.CreateFunc: method is nil but exceptionalRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req *domain.ExceptionalRequest
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, req)
}

func (mock *exceptionalRepoMock) CreateCalls() []struct {
		Ctx context.Context
		Req *domain.ExceptionalRequest
	} {
	var calls []struct {
		Ctx context.Context
		Req *domain.ExceptionalRequest
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) Update(ctx context.Context, req *domain.ExceptionalRequest) error {
	if mock.UpdateFunc == nil {
		panic("exceptionalRepoMock.UpdateFunc: method is nil but exceptionalRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req *domain.ExceptionalRequest
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, req)
}

func (mock *exceptionalRepoMock) UpdateCalls() []struct {
		Ctx context.Context
		Req *domain.ExceptionalRequest
	} {
	var calls []struct {
		Ctx context.Context
		Req *domain.ExceptionalRequest
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) InsertAllocations(ctx context.Context, allocations []domain.ExceptionalAllocation) error {
	if mock.InsertAllocationsFunc == nil {
		panic("exceptionalRepoMock.InsertAllocationsFunc: method is nil but exceptionalRepo.InsertAllocations was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Allocations []domain.ExceptionalAllocation
	}{
		Ctx:         ctx,
		Allocations: allocations,
	}
	mock.lockInsertAllocations.Lock()
	mock.calls.InsertAllocations = append(mock.calls.InsertAllocations, callInfo)
	mock.lockInsertAllocations.Unlock()
	return mock.InsertAllocationsFunc(ctx, allocations)
}

func (mock *exceptionalRepoMock) InsertAllocationsCalls() []struct {
		Ctx         context.Context
		Allocations []domain.ExceptionalAllocation
	} {
	var calls []struct {
		Ctx         context.Context
		Allocations []domain.ExceptionalAllocation
	}
	mock.lockInsertAllocations.RLock()
	calls = mock.calls.InsertAllocations
	mock.lockInsertAllocations.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) ListAllocations(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error) {
	if mock.ListAllocationsFunc == nil {
		panic("exceptionalRepoMock.ListAllocationsFunc: method is nil but exceptionalRepo.ListAllocations was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockListAllocations.Lock()
	mock.calls.ListAllocations = append(mock.calls.ListAllocations, callInfo)
	mock.lockListAllocations.Unlock()
	return mock.ListAllocationsFunc(ctx, requestID)
}

func (mock *exceptionalRepoMock) ListAllocationsCalls() []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockListAllocations.RLock()
	calls = mock.calls.ListAllocations
	mock.lockListAllocations.RUnlock()
	return calls
}

func (mock *exceptionalRepoMock) AllocatedOnOrder(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int, error) {
	if mock.AllocatedOnOrderFunc == nil {
		panic("exceptionalRepoMock.AllocatedOnOrderFunc: method is nil but exceptionalRepo.AllocatedOnOrder was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}{
		Ctx:     ctx,
		OrderID: orderID,
	}
	mock.lockAllocatedOnOrder.Lock()
	mock.calls.AllocatedOnOrder = append(mock.calls.AllocatedOnOrder, callInfo)
	mock.lockAllocatedOnOrder.Unlock()
	return mock.AllocatedOnOrderFunc(ctx, orderID)
}

func (mock *exceptionalRepoMock) AllocatedOnOrderCalls() []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	} {
	var calls []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}
	mock.lockAllocatedOnOrder.RLock()
	calls = mock.calls.AllocatedOnOrder
	mock.lockAllocatedOnOrder.RUnlock()
	return calls
}
