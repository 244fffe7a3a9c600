package purchasing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
)

var _ fulfiller = &fulfillerMock{}

type fulfillerMock struct {
	OrderDeliveredFunc func(ctx context.Context, o *domain.PurchaseOrder, actorID uuid.UUID) (fulfillment.Outcome, error)

	calls struct {
		OrderDelivered []struct {
			Ctx     context.Context
			O       *domain.PurchaseOrder
			ActorID uuid.UUID
		}
	}
	lockOrderDelivered sync.RWMutex
}

func (mock *fulfillerMock) OrderDelivered(ctx context.Context, o *domain.PurchaseOrder, actorID uuid.UUID) (fulfillment.Outcome, error) {
	if mock.OrderDeliveredFunc == nil {
		panic("fulfillerMock.OrderDeliveredFunc: method is nil but fulfiller.OrderDelivered was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		O       *domain.PurchaseOrder
		ActorID uuid.UUID
	}{
		Ctx:     ctx,
		O:       o,
		ActorID: actorID,
	}
	mock.lockOrderDelivered.Lock()
	mock.calls.OrderDelivered = append(mock.calls.OrderDelivered, callInfo)
	mock.lockOrderDelivered.Unlock()
	return mock.OrderDeliveredFunc(ctx, o, actorID)
}

func (mock *fulfillerMock) OrderDeliveredCalls() []struct {
		Ctx     context.Context
		O       *domain.PurchaseOrder
		ActorID uuid.UUID
	} {
	var calls []struct {
		Ctx     context.Context
		O       *domain.PurchaseOrder
		ActorID uuid.UUID
	}
	mock.lockOrderDelivered.RLock()
	calls = mock.calls.OrderDelivered
	mock.lockOrderDelivered.RUnlock()
	return calls
}
