package purchasing

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

// Create places a new UNVALIDATED purchase order. When the order reorders
// a RETURNED one, the source lines for the same products are marked
// reordered in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	now := s.now()
	order := &domain.PurchaseOrder{
		ID:            uuid.New(),
		SupplierID:    input.SupplierID,
		Status:        domain.OrderStatusUnvalidated,
		ExpectedDate:  input.ExpectedDate.UTC(),
		CreatedBy:     actorID,
		SourceOrderID: input.SourceOrderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.Lines = make([]domain.OrderLine, len(input.Lines))
	for i, l := range input.Lines {
		order.Lines[i] = domain.OrderLine{ID: uuid.New(), Kind: l.Kind, ProductID: l.ProductID, Quantity: l.Quantity}
	}

	var reordered int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.suppliers.GetByID(txCtx, order.SupplierID); err != nil {
			return err
		}
		if err := s.checkProducts(txCtx, order); err != nil {
			return err
		}

		if order.SourceOrderID != nil {
			var err error
			reordered, err = s.markReordered(txCtx, order)
			if err != nil {
				return err
			}
		}

		if err := s.orders.Create(txCtx, order); err != nil {
			return fmt.Errorf("create purchase order: %w", err)
		}
		return s.record(txCtx, actorID, domain.AuditActionOrderCreated, order, createDescription(order))
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "purchase order created",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("purchase_order_id", order.ID.String()),
		slog.Int("lines", len(order.Lines)),
		slog.Int("reordered_lines", reordered),
	)

	return Result{Order: order}, nil
}

// checkProducts verifies every line names an existing product of its kind.
func (s *Service) checkProducts(ctx context.Context, o *domain.PurchaseOrder) error {
	var (
		catalog     []domain.StockLine
		exceptional []uuid.UUID
	)
	for _, l := range o.Lines {
		switch l.Kind {
		case domain.LineKindCatalog:
			catalog = append(catalog, domain.StockLine{ProductID: l.ProductID, Quantity: l.Quantity})
		case domain.LineKindExceptional:
			exceptional = append(exceptional, l.ProductID)
		}
	}

	if len(catalog) > 0 {
		if _, err := s.stock.CheckAvailability(ctx, catalog); err != nil {
			return fmt.Errorf("check products: %w", err)
		}
	}
	if len(exceptional) > 0 {
		found, err := s.exceptional.GetProductsByIDs(ctx, exceptional)
		if err != nil {
			return fmt.Errorf("check exceptional products: %w", err)
		}
		known := make(map[uuid.UUID]bool, len(found))
		for _, p := range found {
			known[p.ID] = true
		}
		for _, id := range exceptional {
			if !known[id] {
				return fmt.Errorf("exceptional product %s: %w", id, domain.ErrNotFound)
			}
		}
	}
	return nil
}

// markReordered flags the source order lines that o orders again and
// returns how many were flagged.
func (s *Service) markReordered(ctx context.Context, o *domain.PurchaseOrder) (int, error) {
	src, err := s.orders.GetForUpdate(ctx, *o.SourceOrderID)
	if err != nil {
		return 0, fmt.Errorf("source order: %w", err)
	}
	if src.Status != domain.OrderStatusReturned {
		return 0, domain.NewTransitionError(domain.EntityTypePurchaseOrder, src.ID, src.Status, "reorder")
	}

	var ids []uuid.UUID
	for _, l := range src.Lines {
		if !l.Reordered && o.HasLine(l.Kind, l.ProductID) {
			ids = append(ids, l.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.orders.MarkLinesReordered(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark lines reordered: %w", err)
	}
	return len(ids), nil
}

func createDescription(o *domain.PurchaseOrder) string {
	parts := make([]string, len(o.Lines))
	for i, l := range o.Lines {
		parts[i] = fmt.Sprintf("%s %s x%d", strings.ToLower(l.Kind.String()), l.ProductID, l.Quantity)
	}
	desc := "purchase order created: " + strings.Join(parts, ", ")
	if o.SourceOrderID != nil {
		desc += fmt.Sprintf(" (reorder of %s)", *o.SourceOrderID)
	}
	return desc
}
