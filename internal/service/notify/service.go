// Package notify dispatches notification events produced by the lifecycle
// engines and serves the in-app inbox of the current staff member.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

const (
	DefaultLimit       = 50
	MaxLimit           = 200
	DefaultConcurrency = 8
)

type dispatcher interface {
	Send(ctx context.Context, recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any) error
}

type notificationRepo interface {
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int, error)
}

// Service provides notification dispatch and inbox operations.
type Service struct {
	dispatcher  dispatcher
	inbox       notificationRepo
	log         *slog.Logger
	concurrency int
	now         func() time.Time
}

// NewService creates a new notify service. concurrency bounds the number of
// in-flight sends per Dispatch call; values below 1 use DefaultConcurrency.
func NewService(
	log *slog.Logger,
	dispatcher dispatcher,
	inbox notificationRepo,
	concurrency int,
) *Service {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Service{
		dispatcher:  dispatcher,
		inbox:       inbox,
		log:         log.With("service", "notify"),
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}
