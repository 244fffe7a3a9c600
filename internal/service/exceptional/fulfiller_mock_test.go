package exceptional

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
)

var _ fulfiller = &fulfillerMock{}

type fulfillerMock struct {
	ExceptionalTakenFunc func(ctx context.Context, req *domain.ExceptionalRequest, actorID uuid.UUID) (fulfillment.Outcome, error)

	calls struct {
		ExceptionalTaken []struct {
			Ctx     context.Context
			Req     *domain.ExceptionalRequest
			ActorID uuid.UUID
		}
	}
	lockExceptionalTaken sync.RWMutex
}

func (mock *fulfillerMock) ExceptionalTaken(ctx context.Context, req *domain.ExceptionalRequest, actorID uuid.UUID) (fulfillment.Outcome, error) {
	if mock.ExceptionalTakenFunc == nil {
		panic("fulfillerMock.ExceptionalTakenFunc: method is nil but fulfiller.ExceptionalTaken was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Req     *domain.ExceptionalRequest
		ActorID uuid.UUID
	}{
		Ctx:     ctx,
		Req:     req,
		ActorID: actorID,
	}
	mock.lockExceptionalTaken.Lock()
	mock.calls.ExceptionalTaken = append(mock.calls.ExceptionalTaken, callInfo)
	mock.lockExceptionalTaken.Unlock()
	return mock.ExceptionalTakenFunc(ctx, req, actorID)
}

func (mock *fulfillerMock) ExceptionalTakenCalls() []struct {
		Ctx     context.Context
		Req     *domain.ExceptionalRequest
		ActorID uuid.UUID
	} {
	var calls []struct {
		Ctx     context.Context
		Req     *domain.ExceptionalRequest
		ActorID uuid.UUID
	}
	mock.lockExceptionalTaken.RLock()
	calls = mock.calls.ExceptionalTaken
	mock.lockExceptionalTaken.RUnlock()
	return calls
}
