package request

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
)

var _ fulfiller = &fulfillerMock{}

type fulfillerMock struct {
	RequestTakenFunc func(ctx context.Context, req *domain.Request, actorID uuid.UUID) (fulfillment.Outcome, error)

	calls struct {
		RequestTaken []struct {
			Ctx     context.Context
			Req     *domain.Request
			ActorID uuid.UUID
		}
	}
	lockRequestTaken sync.RWMutex
}

func (mock *fulfillerMock) RequestTaken(ctx context.Context, req *domain.Request, actorID uuid.UUID) (fulfillment.Outcome, error) {
	if mock.RequestTakenFunc == nil {
		panic("fulfillerMock.RequestTakenFunc: method is nil but fulfiller.RequestTaken was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Req     *domain.Request
		ActorID uuid.UUID
	}{
		Ctx:     ctx,
		Req:     req,
		ActorID: actorID,
	}
	mock.lockRequestTaken.Lock()
	mock.calls.RequestTaken = append(mock.calls.RequestTaken, callInfo)
	mock.lockRequestTaken.Unlock()
	return mock.RequestTakenFunc(ctx, req, actorID)
}

func (mock *fulfillerMock) RequestTakenCalls() []struct {
		Ctx     context.Context
		Req     *domain.Request
		ActorID uuid.UUID
	} {
	var calls []struct {
		Ctx     context.Context
		Req     *domain.Request
		ActorID uuid.UUID
	}
	mock.lockRequestTaken.RLock()
	calls = mock.calls.RequestTaken
	mock.lockRequestTaken.RUnlock()
	return calls
}
