package fulfillment

import (
	"context"
	"sync"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ stockLedger = &stockLedgerMock{}

type stockLedgerMock struct {
	DecrementFunc func(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error)
	IncrementFunc func(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error)

	calls struct {
		Decrement []struct {
			Ctx context.Context
			M   domain.StockMutation
		}
		Increment []struct {
			Ctx context.Context
			M   domain.StockMutation
		}
	}
	lockDecrement sync.RWMutex
	lockIncrement sync.RWMutex
}

func (mock *stockLedgerMock) Decrement(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error) {
	if mock.DecrementFunc == nil {
		panic("stockLedgerMock.DecrementFunc: method is nil but stockLedger.Decrement was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.StockMutation
	}{
		Ctx: ctx,
		M:   m,
	}
	mock.lockDecrement.Lock()
	mock.calls.Decrement = append(mock.calls.Decrement, callInfo)
	mock.lockDecrement.Unlock()
	return mock.DecrementFunc(ctx, m)
}

func (mock *stockLedgerMock) DecrementCalls() []struct {
		Ctx context.Context
		M   domain.StockMutation
	} {
	var calls []struct {
		Ctx context.Context
		M   domain.StockMutation
	}
	mock.lockDecrement.RLock()
	calls = mock.calls.Decrement
	mock.lockDecrement.RUnlock()
	return calls
}

func (mock *stockLedgerMock) Increment(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error) {
	if mock.IncrementFunc == nil {
		panic("stockLedgerMock.IncrementFunc: method is nil but stockLedger.Increment was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.StockMutation
	}{
		Ctx: ctx,
		M:   m,
	}
	mock.lockIncrement.Lock()
	mock.calls.Increment = append(mock.calls.Increment, callInfo)
	mock.lockIncrement.Unlock()
	return mock.IncrementFunc(ctx, m)
}

func (mock *stockLedgerMock) IncrementCalls() []struct {
		Ctx context.Context
		M   domain.StockMutation
	} {
	var calls []struct {
		Ctx context.Context
		M   domain.StockMutation
	}
	mock.lockIncrement.RLock()
	calls = mock.calls.Increment
	mock.lockIncrement.RUnlock()
	return calls
}
