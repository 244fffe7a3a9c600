package stats

import (
	"context"
	"sync"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ statsRepo = &statsRepoMock{}

type statsRepoMock struct {
	TotalsFunc            func(ctx context.Context) (domain.StatsTotals, error)
	RequestsPerMonthFunc  func(ctx context.Context, w domain.StatsWindow) ([]domain.MonthlyRequests, error)
	TopProductsFunc       func(ctx context.Context, w domain.StatsWindow, limit int) ([]domain.ProductDemand, error)
	OrdersPerSupplierFunc func(ctx context.Context, w domain.StatsWindow) ([]domain.SupplierOrders, error)

	calls struct {
		Totals []struct {
			Ctx context.Context
		}
		RequestsPerMonth []struct {
			Ctx context.Context
			W   domain.StatsWindow
		}
		TopProducts []struct {
			Ctx   context.Context
			W     domain.StatsWindow
			Limit int
		}
		OrdersPerSupplier []struct {
			Ctx context.Context
			W   domain.StatsWindow
		}
	}
	lockTotals            sync.RWMutex
	lockRequestsPerMonth  sync.RWMutex
	lockTopProducts       sync.RWMutex
	lockOrdersPerSupplier sync.RWMutex
}

func (mock *statsRepoMock) Totals(ctx context.Context) (domain.StatsTotals, error) {
	if mock.TotalsFunc == nil {
		panic("statsRepoMock.TotalsFunc: method is nil but statsRepo.Totals was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockTotals.Lock()
	mock.calls.Totals = append(mock.calls.Totals, callInfo)
	mock.lockTotals.Unlock()
	return mock.TotalsFunc(ctx)
}

func (mock *statsRepoMock) TotalsCalls() []struct {
		Ctx context.Context
	} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockTotals.RLock()
	calls = mock.calls.Totals
	mock.lockTotals.RUnlock()
	return calls
}

func (mock *statsRepoMock) RequestsPerMonth(ctx context.Context, w domain.StatsWindow) ([]domain.MonthlyRequests, error) {
	if mock.RequestsPerMonthFunc == nil {
		panic("statsRepoMock.RequestsPerMonthFunc: method is nil but statsRepo.RequestsPerMonth was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   domain.StatsWindow
	}{
		Ctx: ctx,
		W:   w,
	}
	mock.lockRequestsPerMonth.Lock()
	mock.calls.RequestsPerMonth = append(mock.calls.RequestsPerMonth, callInfo)
	mock.lockRequestsPerMonth.Unlock()
	return mock.RequestsPerMonthFunc(ctx, w)
}

func (mock *statsRepoMock) RequestsPerMonthCalls() []struct {
		Ctx context.Context
		W   domain.StatsWindow
	} {
	var calls []struct {
		Ctx context.Context
		W   domain.StatsWindow
	}
	mock.lockRequestsPerMonth.RLock()
	calls = mock.calls.RequestsPerMonth
	mock.lockRequestsPerMonth.RUnlock()
	return calls
}

func (mock *statsRepoMock) TopProducts(ctx context.Context, w domain.StatsWindow, limit int) ([]domain.ProductDemand, error) {
	if mock.TopProductsFunc == nil {
		panic("statsRepoMock.TopProductsFunc: method is nil but statsRepo.TopProducts was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		W     domain.StatsWindow
		Limit int
	}{
		Ctx:   ctx,
		W:     w,
		Limit: limit,
	}
	mock.lockTopProducts.Lock()
	mock.calls.TopProducts = append(mock.calls.TopProducts, callInfo)
	mock.lockTopProducts.Unlock()
	return mock.TopProductsFunc(ctx, w, limit)
}

func (mock *statsRepoMock) TopProductsCalls() []struct {
		Ctx   context.Context
		W     domain.StatsWindow
		Limit int
	} {
	var calls []struct {
		Ctx   context.Context
		W     domain.StatsWindow
		Limit int
	}
	mock.lockTopProducts.RLock()
	calls = mock.calls.TopProducts
	mock.lockTopProducts.RUnlock()
	return calls
}

func (mock *statsRepoMock) OrdersPerSupplier(ctx context.Context, w domain.StatsWindow) ([]domain.SupplierOrders, error) {
	if mock.OrdersPerSupplierFunc == nil {
		panic("statsRepoMock.OrdersPerSupplierFunc: method is nil but statsRepo.OrdersPerSupplier was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   domain.StatsWindow
	}{
		Ctx: ctx,
		W:   w,
	}
	mock.lockOrdersPerSupplier.Lock()
	mock.calls.OrdersPerSupplier = append(mock.calls.OrdersPerSupplier, callInfo)
	mock.lockOrdersPerSupplier.Unlock()
	return mock.OrdersPerSupplierFunc(ctx, w)
}

func (mock *statsRepoMock) OrdersPerSupplierCalls() []struct {
		Ctx context.Context
		W   domain.StatsWindow
	} {
	var calls []struct {
		Ctx context.Context
		W   domain.StatsWindow
	}
	mock.lockOrdersPerSupplier.RLock()
	calls = mock.calls.OrdersPerSupplier
	mock.lockOrdersPerSupplier.RUnlock()
	return calls
}
