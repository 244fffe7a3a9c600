package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/audit"
)

var _ auditService = &auditServiceMock{}

type auditServiceMock struct {
	RecordManualFunc func(ctx context.Context, input audit.RecordInput) (domain.AuditEntry, error)
	ListFunc         func(ctx context.Context, input audit.ListInput) ([]domain.AuditEntry, int, error)
	HistoryFunc      func(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error)

	calls struct {
		RecordManual []struct {
			Ctx   context.Context
			Input audit.RecordInput
		}
		List []struct {
			Ctx   context.Context
			Input audit.ListInput
		}
		History []struct {
			Ctx      context.Context
			EntityID uuid.UUID
		}
	}
	lockRecordManual sync.RWMutex
	lockList         sync.RWMutex
	lockHistory      sync.RWMutex
}

func (mock *auditServiceMock) RecordManual(ctx context.Context, input audit.RecordInput) (domain.AuditEntry, error) {
	if mock.RecordManualFunc == nil {
		panic("auditServiceMock.RecordManualFunc: method is nil but auditService.RecordManual was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input audit.RecordInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRecordManual.Lock()
	mock.calls.RecordManual = append(mock.calls.RecordManual, callInfo)
	mock.lockRecordManual.Unlock()
	return mock.RecordManualFunc(ctx, input)
}

func (mock *auditServiceMock) RecordManualCalls() []struct {
		Ctx   context.Context
		Input audit.RecordInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input audit.RecordInput
	}
	mock.lockRecordManual.RLock()
	calls = mock.calls.RecordManual
	mock.lockRecordManual.RUnlock()
	return calls
}

func (mock *auditServiceMock) List(ctx context.Context, input audit.ListInput) ([]domain.AuditEntry, int, error) {
	if mock.ListFunc == nil {
		panic("auditServiceMock.ListFunc: method is nil but auditService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input audit.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *auditServiceMock) ListCalls() []struct {
		Ctx   context.Context
		Input audit.ListInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input audit.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *auditServiceMock) History(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error) {
	if mock.HistoryFunc == nil {
		panic("auditServiceMock.HistoryFunc: method is nil but auditService.History was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		EntityID uuid.UUID
	}{
		Ctx:      ctx,
		EntityID: entityID,
	}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, entityID)
}

func (mock *auditServiceMock) HistoryCalls() []struct {
		Ctx      context.Context
		EntityID uuid.UUID
	} {
	var calls []struct {
		Ctx      context.Context
		EntityID uuid.UUID
	}
	mock.lockHistory.RLock()
	calls = mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}
