package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 200
)

// GetStock returns a product with its current quantities.
func (s *Service) GetStock(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	if productID == uuid.Nil {
		return nil, domain.NewValidationError("product_id", "required")
	}
	return s.stock.GetProduct(ctx, productID)
}

// ListMovements returns a product's movement register, newest first.
// Restricted to MANAGER and WAREHOUSE.
func (s *Service) ListMovements(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, domain.NewValidationError("product_id", "required")
	}
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.stock.ListMovements(ctx, productID, limit, offset)
}

// ListAlerts returns every product currently LOW or OUT.
func (s *Service) ListAlerts(ctx context.Context) ([]domain.Product, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, err
	}
	return s.stock.ListAlerts(ctx)
}
