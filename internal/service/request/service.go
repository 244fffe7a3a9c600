// Package request implements the lifecycle of requests for stocked catalog
// items: submission, manager decision and warehouse hand-over.
package request

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	MaxLines     = 100
)

type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, int, error)
	Create(ctx context.Context, req *domain.Request) error
	Update(ctx context.Context, req *domain.Request) error
}

type stockChecker interface {
	CheckAvailability(ctx context.Context, lines []domain.StockLine) (domain.Availability, error)
}

type fulfiller interface {
	RequestTaken(ctx context.Context, req *domain.Request, actorID uuid.UUID) (fulfillment.Outcome, error)
}

type notifier interface {
	Dispatch(ctx context.Context, events []domain.NotificationEvent) []domain.NotificationWarning
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result is the outcome of a request transition. Warnings carry
// notifications that could not be delivered after the commit.
type Result struct {
	Request  *domain.Request
	Changes  []domain.StockChange
	Warnings []domain.NotificationWarning
}

// Service is the request engine.
type Service struct {
	requests  requestRepo
	stock     stockChecker
	fulfiller fulfiller
	notifier  notifier
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new request engine.
func NewService(
	log *slog.Logger,
	requests requestRepo,
	stock stockChecker,
	fulfiller fulfiller,
	notifier notifier,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		requests:  requests,
		stock:     stock,
		fulfiller: fulfiller,
		notifier:  notifier,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "request"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}
