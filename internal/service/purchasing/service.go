// Package purchasing implements the purchase order lifecycle: creation,
// validation, delivery with stock reconciliation, returns and cancellation.
package purchasing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
)

const (
	DefaultLimit    = 50
	MaxLimit        = 200
	MaxLines        = 200
	MaxReasonLength = 1000
	invoiceFolder   = "invoices"
)

type orderRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, int, error)
	Create(ctx context.Context, o *domain.PurchaseOrder) error
	Update(ctx context.Context, o *domain.PurchaseOrder) error
	MarkLinesReordered(ctx context.Context, lineIDs []uuid.UUID) error
}

type supplierReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
}

type stockChecker interface {
	CheckAvailability(ctx context.Context, lines []domain.StockLine) (domain.Availability, error)
}

type exceptionalCatalog interface {
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error)
}

type fulfiller interface {
	OrderDelivered(ctx context.Context, o *domain.PurchaseOrder, actorID uuid.UUID) (fulfillment.Outcome, error)
}

type documentStore interface {
	Put(ctx context.Context, folder, name string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
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

// Document is an opened stored document. The caller closes Body.
type Document struct {
	Name string
	Body io.ReadCloser
}

// Result is the outcome of a purchase order transition.
type Result struct {
	Order    *domain.PurchaseOrder
	Changes  []domain.StockChange
	Warnings []domain.NotificationWarning
}

// Service is the purchase order engine.
type Service struct {
	orders      orderRepo
	suppliers   supplierReader
	stock       stockChecker
	exceptional exceptionalCatalog
	fulfiller   fulfiller
	documents   documentStore
	notifier    notifier
	audit       auditLogger
	tx          txManager
	log         *slog.Logger
	now         func() time.Time
}

// Deps groups the collaborators of the purchase order engine.
type Deps struct {
	Orders      orderRepo
	Suppliers   supplierReader
	Stock       stockChecker
	Exceptional exceptionalCatalog
	Fulfiller   fulfiller
	Documents   documentStore
	Notifier    notifier
	Audit       auditLogger
	Tx          txManager
}

// NewService creates a new purchase order engine.
func NewService(log *slog.Logger, deps Deps) *Service {
	return &Service{
		orders:      deps.Orders,
		suppliers:   deps.Suppliers,
		stock:       deps.Stock,
		exceptional: deps.Exceptional,
		fulfiller:   deps.Fulfiller,
		documents:   deps.Documents,
		notifier:    deps.Notifier,
		audit:       deps.Audit,
		tx:          deps.Tx,
		log:         log.With("service", "purchasing"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action domain.AuditAction, o *domain.PurchaseOrder, desc string) error {
	entity := domain.EntityTypePurchaseOrder
	id := o.ID
	lines := o.CatalogStockLines()
	products := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		products[i] = l.ProductID
	}

	err := s.audit.Log(ctx, domain.AuditEntry{
		ID:                 uuid.New(),
		ActorID:            actorID,
		ActionType:         action,
		EntityType:         &entity,
		EntityID:           &id,
		AffectedProductIDs: products,
		Description:        desc,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

func creatorEvent(kind domain.NotificationKind, o *domain.PurchaseOrder, payload map[string]any) []domain.NotificationEvent {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["purchaseOrderId"] = o.ID.String()
	payload["supplierId"] = o.SupplierID.String()
	return []domain.NotificationEvent{{Kind: kind, Recipients: []uuid.UUID{o.CreatedBy}, Payload: payload}}
}
