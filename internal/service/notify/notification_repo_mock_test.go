package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	ListFunc        func(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int, offset int) ([]domain.Notification, int, error)
	CountUnreadFunc func(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkReadFunc    func(ctx context.Context, recipientID uuid.UUID, id uuid.UUID, at time.Time) error
	MarkAllReadFunc func(ctx context.Context, recipientID uuid.UUID, at time.Time) (int, error)

	calls struct {
		List []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
			UnreadOnly  bool
			Limit       int
			Offset      int
		}
		CountUnread []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
		}
		MarkRead []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
			ID          uuid.UUID
			At          time.Time
		}
		MarkAllRead []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
			At          time.Time
		}
	}
	lockList        sync.RWMutex
	lockCountUnread sync.RWMutex
	lockMarkRead    sync.RWMutex
	lockMarkAllRead sync.RWMutex
}

func (mock *notificationRepoMock) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int, offset int) ([]domain.Notification, int, error) {
	if mock.ListFunc == nil {
		panic("notificationRepoMock.ListFunc: method is nil but notificationRepo.List was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		UnreadOnly  bool
		Limit       int
		Offset      int
	}{
		Ctx:         ctx,
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		Limit:       limit,
		Offset:      offset,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, recipientID, unreadOnly, limit, offset)
}

func (mock *notificationRepoMock) ListCalls() []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		UnreadOnly  bool
		Limit       int
		Offset      int
	} {
	var calls []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		UnreadOnly  bool
		Limit       int
		Offset      int
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *notificationRepoMock) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	if mock.CountUnreadFunc == nil {
		panic("notificationRepoMock.CountUnreadFunc: method is nil but notificationRepo.CountUnread was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
	}{
		Ctx:         ctx,
		RecipientID: recipientID,
	}
	mock.lockCountUnread.Lock()
	mock.calls.CountUnread = append(mock.calls.CountUnread, callInfo)
	mock.lockCountUnread.Unlock()
	return mock.CountUnreadFunc(ctx, recipientID)
}

func (mock *notificationRepoMock) CountUnreadCalls() []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
	} {
	var calls []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
	}
	mock.lockCountUnread.RLock()
	calls = mock.calls.CountUnread
	mock.lockCountUnread.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkRead(ctx context.Context, recipientID uuid.UUID, id uuid.UUID, at time.Time) error {
	if mock.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc: method is nil but notificationRepo.MarkRead was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		ID          uuid.UUID
		At          time.Time
	}{
		Ctx:         ctx,
		RecipientID: recipientID,
		ID:          id,
		At:          at,
	}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, recipientID, id, at)
}

func (mock *notificationRepoMock) MarkReadCalls() []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		ID          uuid.UUID
		At          time.Time
	} {
	var calls []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		ID          uuid.UUID
		At          time.Time
	}
	mock.lockMarkRead.RLock()
	calls = mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int, error) {
	if mock.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc: method is nil but notificationRepo.MarkAllRead was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		At          time.Time
	}{
		Ctx:         ctx,
		RecipientID: recipientID,
		At:          at,
	}
	mock.lockMarkAllRead.Lock()
	mock.calls.MarkAllRead = append(mock.calls.MarkAllRead, callInfo)
	mock.lockMarkAllRead.Unlock()
	return mock.MarkAllReadFunc(ctx, recipientID, at)
}

func (mock *notificationRepoMock) MarkAllReadCalls() []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		At          time.Time
	} {
	var calls []struct {
		Ctx         context.Context
		RecipientID uuid.UUID
		At          time.Time
	}
	mock.lockMarkAllRead.RLock()
	calls = mock.calls.MarkAllRead
	mock.lockMarkAllRead.RUnlock()
	return calls
}
