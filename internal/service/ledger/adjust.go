package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// AdjustInput is an administrative stock correction.
type AdjustInput struct {
	ProductID uuid.UUID
	Delta     int
	Reason    string
}

// Validate checks all fields and collects all errors.
func (i AdjustInput) Validate() error {
	var errs []domain.FieldError
	if i.ProductID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "product_id", Message: "required"})
	}
	if i.Delta == 0 {
		errs = append(errs, domain.FieldError{Field: "delta", Message: "must not be zero"})
	}
	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(reason) > 500 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 500 characters"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Adjust corrects a product's on-hand quantity through the same atomic path
// as every other mutation and records a STOCK_ADJUSTED audit entry. A
// correction that would go below zero fails with InsufficientStockError.
func (s *Service) Adjust(ctx context.Context, input AdjustInput) (domain.StockChange, error) {
	actorID, err := access.Require(ctx, domain.UserRoleAdmin)
	if err != nil {
		return domain.StockChange{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.StockChange{}, err
	}

	reason := strings.TrimSpace(input.Reason)
	qty := input.Delta
	if qty < 0 {
		qty = -qty
	}
	mutation := domain.StockMutation{
		Lines:   []domain.StockLine{{ProductID: input.ProductID, Quantity: qty}},
		ActorID: actorID,
		Reason:  "adjustment: " + reason,
		Ref:     &domain.StockMovementRef{Type: domain.EntityTypeProduct, ID: input.ProductID},
	}

	var change domain.StockChange
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var (
			changes []domain.StockChange
			err     error
		)
		if input.Delta < 0 {
			changes, err = s.Decrement(txCtx, mutation)
		} else {
			changes, err = s.Increment(txCtx, mutation)
		}
		if err != nil {
			return err
		}
		change = changes[0]

		entity := domain.EntityTypeProduct
		productID := input.ProductID
		return s.audit.Log(txCtx, domain.AuditEntry{
			ID:                 uuid.New(),
			ActorID:            actorID,
			ActionType:         domain.AuditActionStockAdjusted,
			EntityType:         &entity,
			EntityID:           &productID,
			AffectedProductIDs: []uuid.UUID{productID},
			Description:        fmt.Sprintf("stock adjusted %+d (%d -> %d): %s", input.Delta, change.Previous, change.Current, reason),
			CreatedAt:          s.now(),
		})
	})
	if err != nil {
		return domain.StockChange{}, err
	}

	s.log.InfoContext(ctx, "stock adjusted",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("product_id", input.ProductID.String()),
		slog.Int("delta", input.Delta),
		slog.Int("current", change.Current),
	)

	return change, nil
}
