package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/exceptional"
)

var _ exceptionalService = &exceptionalServiceMock{}

type exceptionalServiceMock struct {
	SubmitFunc                  func(ctx context.Context, input exceptional.SubmitInput) (exceptional.Result, error)
	AcceptFunc                  func(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error)
	RejectFunc                  func(ctx context.Context, input exceptional.RejectInput) (exceptional.Result, error)
	RecordOrderFunc             func(ctx context.Context, input exceptional.RecordOrderInput) (exceptional.Result, error)
	MarkDeliveredFunc           func(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error)
	MarkTakenFunc               func(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error)
	GetFunc                     func(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error)
	ListFunc                    func(ctx context.Context, input exceptional.ListInput) ([]domain.ExceptionalRequest, int, error)
	ListExceptionalProductsFunc func(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error)
	AllocationsFunc             func(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error)

	calls struct {
		Submit []struct {
			Ctx   context.Context
			Input exceptional.SubmitInput
		}
		Accept []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		Reject []struct {
			Ctx   context.Context
			Input exceptional.RejectInput
		}
		RecordOrder []struct {
			Ctx   context.Context
			Input exceptional.RecordOrderInput
		}
		MarkDelivered []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		MarkTaken []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input exceptional.ListInput
		}
		ListExceptionalProducts []struct {
			Ctx    context.Context
			Search string
			Limit  int
		}
		Allocations []struct {
			Ctx       context.Context
			RequestID uuid.UUID
		}
	}
	lockSubmit                  sync.RWMutex
	lockAccept                  sync.RWMutex
	lockReject                  sync.RWMutex
	lockRecordOrder             sync.RWMutex
	lockMarkDelivered           sync.RWMutex
	lockMarkTaken               sync.RWMutex
	lockGet                     sync.RWMutex
	lockList                    sync.RWMutex
	lockListExceptionalProducts sync.RWMutex
	lockAllocations             sync.RWMutex
}

func (mock *exceptionalServiceMock) Submit(ctx context.Context, input exceptional.SubmitInput) (exceptional.Result, error) {
	if mock.SubmitFunc == nil {
		panic("exceptionalServiceMock.SubmitFunc: method is nil but exceptionalService.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input exceptional.SubmitInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, input)
}

func (mock *exceptionalServiceMock) SubmitCalls() []struct {
		Ctx   context.Context
		Input exceptional.SubmitInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input exceptional.SubmitInput
	}
	mock.lockSubmit.RLock()
	calls = mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) Accept(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error) {
	if mock.AcceptFunc == nil {
		panic("exceptionalServiceMock.AcceptFunc: method is nil but exceptionalService.Accept was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockAccept.Lock()
	mock.calls.Accept = append(mock.calls.Accept, callInfo)
	mock.lockAccept.Unlock()
	return mock.AcceptFunc(ctx, requestID)
}

func (mock *exceptionalServiceMock) AcceptCalls() []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockAccept.RLock()
	calls = mock.calls.Accept
	mock.lockAccept.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) Reject(ctx context.Context, input exceptional.RejectInput) (exceptional.Result, error) {
	if mock.RejectFunc == nil {
		panic("exceptionalServiceMock.RejectFunc: method is nil but exceptionalService.Reject was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input exceptional.RejectInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockReject.Lock()
	mock.calls.Reject = append(mock.calls.Reject, callInfo)
	mock.lockReject.Unlock()
	return mock.RejectFunc(ctx, input)
}

func (mock *exceptionalServiceMock) RejectCalls() []struct {
		Ctx   context.Context
		Input exceptional.RejectInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input exceptional.RejectInput
	}
	mock.lockReject.RLock()
	calls = mock.calls.Reject
	mock.lockReject.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) RecordOrder(ctx context.Context, input exceptional.RecordOrderInput) (exceptional.Result, error) {
	if mock.RecordOrderFunc == nil {
		panic("exceptionalServiceMock.RecordOrderFunc: method is nil but exceptionalService.RecordOrder was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input exceptional.RecordOrderInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRecordOrder.Lock()
	mock.calls.RecordOrder = append(mock.calls.RecordOrder, callInfo)
	mock.lockRecordOrder.Unlock()
	return mock.RecordOrderFunc(ctx, input)
}

func (mock *exceptionalServiceMock) RecordOrderCalls() []struct {
		Ctx   context.Context
		Input exceptional.RecordOrderInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input exceptional.RecordOrderInput
	}
	mock.lockRecordOrder.RLock()
	calls = mock.calls.RecordOrder
	mock.lockRecordOrder.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) MarkDelivered(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error) {
	if mock.MarkDeliveredFunc == nil {
		panic("exceptionalServiceMock.MarkDeliveredFunc: method is nil but exceptionalService.MarkDelivered was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockMarkDelivered.Lock()
	mock.calls.MarkDelivered = append(mock.calls.MarkDelivered, callInfo)
	mock.lockMarkDelivered.Unlock()
	return mock.MarkDeliveredFunc(ctx, requestID)
}

func (mock *exceptionalServiceMock) MarkDeliveredCalls() []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockMarkDelivered.RLock()
	calls = mock.calls.MarkDelivered
	mock.lockMarkDelivered.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) MarkTaken(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error) {
	if mock.MarkTakenFunc == nil {
		panic("exceptionalServiceMock.MarkTakenFunc: method is nil but exceptionalService.MarkTaken was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockMarkTaken.Lock()
	mock.calls.MarkTaken = append(mock.calls.MarkTaken, callInfo)
	mock.lockMarkTaken.Unlock()
	return mock.MarkTakenFunc(ctx, requestID)
}

func (mock *exceptionalServiceMock) MarkTakenCalls() []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockMarkTaken.RLock()
	calls = mock.calls.MarkTaken
	mock.lockMarkTaken.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error) {
	if mock.GetFunc == nil {
		panic("exceptionalServiceMock.GetFunc: method is nil but exceptionalService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *exceptionalServiceMock) GetCalls() []struct {
		Ctx context.Context
		ID  uuid.UUID
	} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) List(ctx context.Context, input exceptional.ListInput) ([]domain.ExceptionalRequest, int, error) {
	if mock.ListFunc == nil {
		panic("exceptionalServiceMock.ListFunc: method is nil but exceptionalService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input exceptional.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *exceptionalServiceMock) ListCalls() []struct {
		Ctx   context.Context
		Input exceptional.ListInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input exceptional.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) ListExceptionalProducts(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error) {
	if mock.ListExceptionalProductsFunc == nil {
		panic("exceptionalServiceMock.ListExceptionalProductsFunc: method is nil but exceptionalService.ListExceptionalProducts was just called")
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
	mock.lockListExceptionalProducts.Lock()
	mock.calls.ListExceptionalProducts = append(mock.calls.ListExceptionalProducts, callInfo)
	mock.lockListExceptionalProducts.Unlock()
	return mock.ListExceptionalProductsFunc(ctx, search, limit)
}

func (mock *exceptionalServiceMock) ListExceptionalProductsCalls() []struct {
		Ctx    context.Context
		Search string
		Limit  int
	} {
	var calls []struct {
		Ctx    context.Context
		Search string
		Limit  int
	}
	mock.lockListExceptionalProducts.RLock()
	calls = mock.calls.ListExceptionalProducts
	mock.lockListExceptionalProducts.RUnlock()
	return calls
}

func (mock *exceptionalServiceMock) Allocations(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error) {
	if mock.AllocationsFunc == nil {
		panic("exceptionalServiceMock.AllocationsFunc: method is nil but exceptionalService.Allocations was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}{
		Ctx:       ctx,
		RequestID: requestID,
	}
	mock.lockAllocations.Lock()
	mock.calls.Allocations = append(mock.calls.Allocations, callInfo)
	mock.lockAllocations.Unlock()
	return mock.AllocationsFunc(ctx, requestID)
}

func (mock *exceptionalServiceMock) AllocationsCalls() []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	} {
	var calls []struct {
		Ctx       context.Context
		RequestID uuid.UUID
	}
	mock.lockAllocations.RLock()
	calls = mock.calls.Allocations
	mock.lockAllocations.RUnlock()
	return calls
}
