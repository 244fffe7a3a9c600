// Package exceptional implements the lifecycle of requests for items that
// are not carried in stock. Ordering progress is tracked per line and may
// be split across several purchase orders.
package exceptional

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
)

const (
	DefaultLimit       = 50
	MaxLimit           = 200
	MaxLines           = 50
	MaxNameLength      = 200
	DefaultSearchLimit = 20
)

type exceptionalRepo interface {
	FindOrCreateProduct(ctx context.Context, name string, brand *string) (domain.ExceptionalProduct, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error)
	SearchProducts(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error)
	List(ctx context.Context, filter domain.ExceptionalFilter) ([]domain.ExceptionalRequest, int, error)
	Create(ctx context.Context, req *domain.ExceptionalRequest) error
	Update(ctx context.Context, req *domain.ExceptionalRequest) error
	InsertAllocations(ctx context.Context, allocations []domain.ExceptionalAllocation) error
	ListAllocations(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error)
	AllocatedOnOrder(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int, error)
}

type orderLocker interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
}

type fulfiller interface {
	ExceptionalTaken(ctx context.Context, req *domain.ExceptionalRequest, actorID uuid.UUID) (fulfillment.Outcome, error)
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

// Result is the outcome of an exceptional request transition.
type Result struct {
	Request  *domain.ExceptionalRequest
	Warnings []domain.NotificationWarning
}

// Service is the exceptional request engine.
type Service struct {
	requests  exceptionalRepo
	orders    orderLocker
	fulfiller fulfiller
	notifier  notifier
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new exceptional request engine.
func NewService(
	log *slog.Logger,
	requests exceptionalRepo,
	orders orderLocker,
	fulfiller fulfiller,
	notifier notifier,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		requests:  requests,
		orders:    orders,
		fulfiller: fulfiller,
		notifier:  notifier,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "exceptional"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action domain.AuditAction, req *domain.ExceptionalRequest, desc string) error {
	entity := domain.EntityTypeExceptional
	id := req.ID
	err := s.audit.Log(ctx, domain.AuditEntry{
		ID:                 uuid.New(),
		ActorID:            actorID,
		ActionType:         action,
		EntityType:         &entity,
		EntityID:           &id,
		AffectedProductIDs: req.ProductIDs(),
		Description:        desc,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

func requesterEvent(kind domain.NotificationKind, req *domain.ExceptionalRequest, payload map[string]any) []domain.NotificationEvent {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["exceptionalRequestId"] = req.ID.String()
	return []domain.NotificationEvent{{Kind: kind, Recipients: []uuid.UUID{req.RequesterID}, Payload: payload}}
}
