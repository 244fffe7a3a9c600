// Package fulfillment applies the side effects of fulfilling transitions:
// the stock mutation, the audit entry and the pending notifications. It is
// called by the request, exceptional and purchasing services inside their
// own transactions and is not exposed on its own.
package fulfillment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

type stockLedger interface {
	Decrement(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error)
	Increment(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error)
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

type staffDirectory interface {
	ListIDsByRole(ctx context.Context, roles []domain.UserRole) ([]uuid.UUID, error)
}

// Outcome is what a fulfilling transition produced. Events must be
// dispatched only after the surrounding transaction commits.
type Outcome struct {
	Changes []domain.StockChange
	Events  []domain.NotificationEvent
}

// Service is the fulfillment reconciler.
type Service struct {
	ledger stockLedger
	audit  auditLogger
	staff  staffDirectory
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new fulfillment reconciler.
func NewService(log *slog.Logger, ledger stockLedger, audit auditLogger, staff staffDirectory) *Service {
	return &Service{
		ledger: ledger,
		audit:  audit,
		staff:  staff,
		log:    log.With("service", "fulfillment"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}
