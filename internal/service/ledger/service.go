// Package ledger owns every change to product on-hand quantities.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

type stockRepo interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProducts(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	LockProducts(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	SetOnHand(ctx context.Context, id uuid.UUID, onHand int) error
	InsertMovements(ctx context.Context, movements []domain.StockMovement) error
	ListMovements(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error)
	ListAlerts(ctx context.Context) ([]domain.Product, error)
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the stock ledger.
type Service struct {
	stock stockRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new ledger service.
func NewService(log *slog.Logger, stock stockRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		stock: stock,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "ledger"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}
