package supplier

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ supplierRepo = &supplierRepoMock{}

type supplierRepoMock struct {
	ListFunc        func(ctx context.Context) ([]domain.Supplier, error)
	HistoryFunc     func(ctx context.Context, since time.Time) ([]domain.SupplierHistory, error)
	UpdateScoreFunc func(ctx context.Context, id uuid.UUID, score decimal.Decimal, at time.Time) error

	calls struct {
		List []struct {
			Ctx context.Context
		}
		History []struct {
			Ctx   context.Context
			Since time.Time
		}
		UpdateScore []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Score decimal.Decimal
			At    time.Time
		}
	}
	lockList        sync.RWMutex
	lockHistory     sync.RWMutex
	lockUpdateScore sync.RWMutex
}

func (mock *supplierRepoMock) List(ctx context.Context) ([]domain.Supplier, error) {
	if mock.ListFunc == nil {
		panic("supplierRepoMock.ListFunc: method is nil but supplierRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *supplierRepoMock) ListCalls() []struct {
		Ctx context.Context
	} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *supplierRepoMock) History(ctx context.Context, since time.Time) ([]domain.SupplierHistory, error) {
	if mock.HistoryFunc == nil {
		panic("supplierRepoMock.HistoryFunc: method is nil but supplierRepo.History was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Since time.Time
	}{
		Ctx:   ctx,
		Since: since,
	}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, since)
}

func (mock *supplierRepoMock) HistoryCalls() []struct {
		Ctx   context.Context
		Since time.Time
	} {
	var calls []struct {
		Ctx   context.Context
		Since time.Time
	}
	mock.lockHistory.RLock()
	calls = mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}

func (mock *supplierRepoMock) UpdateScore(ctx context.Context, id uuid.UUID, score decimal.Decimal, at time.Time) error {
	if mock.UpdateScoreFunc == nil {
		panic("supplierRepoMock.UpdateScoreFunc: method is nil but supplierRepo.UpdateScore was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Score decimal.Decimal
		At    time.Time
	}{
		Ctx:   ctx,
		ID:    id,
		Score: score,
		At:    at,
	}
	mock.lockUpdateScore.Lock()
	mock.calls.UpdateScore = append(mock.calls.UpdateScore, callInfo)
	mock.lockUpdateScore.Unlock()
	return mock.UpdateScoreFunc(ctx, id, score, at)
}

func (mock *supplierRepoMock) UpdateScoreCalls() []struct {
		Ctx   context.Context
		ID    uuid.UUID
		Score decimal.Decimal
		At    time.Time
	} {
	var calls []struct {
		Ctx   context.Context
		ID    uuid.UUID
		Score decimal.Decimal
		At    time.Time
	}
	mock.lockUpdateScore.RLock()
	calls = mock.calls.UpdateScore
	mock.lockUpdateScore.RUnlock()
	return calls
}
