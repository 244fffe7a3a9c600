package exceptional

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// RecordOrder records that quantities of some lines were placed on a
// purchase order. Recording is only possible while the request is
// ACCEPTED; once every line is ordered in full the request moves to
// ORDERED. Supplier and expected date are taken from the order.
func (s *Service) RecordOrder(ctx context.Context, input RecordOrderInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	var req *domain.ExceptionalRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, input.RequestID)
		if err != nil {
			return err
		}
		if req.Status != domain.ExceptionalStatusAccepted {
			return domain.NewTransitionError(domain.EntityTypeExceptional, req.ID, req.Status, "record order")
		}

		po, err := s.orders.GetForUpdate(txCtx, input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if !po.Status.AcceptsAllocations() {
			return domain.NewTransitionError(domain.EntityTypePurchaseOrder, po.ID, po.Status, "allocate exceptional lines")
		}

		// The order row lock serializes allocations against this order.
		allocated, err := s.requests.AllocatedOnOrder(txCtx, po.ID)
		if err != nil {
			return fmt.Errorf("sum order allocations: %w", err)
		}

		now := s.now()
		allocations, err := allocate(req, po, allocated, input, actorID, now)
		if err != nil {
			return err
		}

		if err := s.requests.InsertAllocations(txCtx, allocations); err != nil {
			return fmt.Errorf("insert allocations: %w", err)
		}

		supplierID := po.SupplierID
		expected := po.ExpectedDate
		req.SupplierID = &supplierID
		req.ExpectedDate = &expected
		if req.FullyOrdered() {
			req.Status = domain.ExceptionalStatusOrdered
		}
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update exceptional request: %w", err)
		}
		return s.record(txCtx, actorID, domain.AuditActionExceptionalOrdered, req,
			orderDescription(req, po.ID, allocations))
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "exceptional order recorded",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("exceptional_request_id", req.ID.String()),
		slog.String("purchase_order_id", input.PurchaseOrderID.String()),
		slog.String("status", req.Status.String()),
	)

	return Result{Request: req}, nil
}

// allocate applies the input to req.Lines and returns one allocation per
// recorded line. allocated holds what other allocations already consume of
// each exceptional product line on po.
func allocate(req *domain.ExceptionalRequest, po *domain.PurchaseOrder, allocated map[uuid.UUID]int, input RecordOrderInput, actorID uuid.UUID, now time.Time) ([]domain.ExceptionalAllocation, error) {
	index := make(map[uuid.UUID]int, len(req.Lines))
	for i, l := range req.Lines {
		index[l.ID] = i
	}

	var errs []domain.FieldError
	for idx, l := range input.Lines {
		field := fmt.Sprintf("lines[%d].line_id", idx)
		i, ok := index[l.LineID]
		if !ok {
			errs = append(errs, domain.FieldError{Field: field, Message: "line is not on the request"})
			continue
		}
		if !po.HasLine(domain.LineKindExceptional, req.Lines[i].ExceptionalProductID) {
			errs = append(errs, domain.FieldError{Field: field, Message: "purchase order has no line for this product"})
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	if allocated == nil {
		allocated = make(map[uuid.UUID]int)
	}
	out := make([]domain.ExceptionalAllocation, len(input.Lines))
	for idx, l := range input.Lines {
		line := &req.Lines[index[l.LineID]]
		if line.OrderedQty+l.OrderedQty > line.Quantity {
			return nil, &domain.OverOrderError{
				LineID:    line.ID,
				Quantity:  line.Quantity,
				Ordered:   line.OrderedQty,
				Requested: l.OrderedQty,
			}
		}
		capacity := po.LineQuantity(domain.LineKindExceptional, line.ExceptionalProductID)
		if used := allocated[line.ExceptionalProductID]; used+l.OrderedQty > capacity {
			return nil, &domain.OrderLineExhaustedError{
				OrderID:   po.ID,
				ProductID: line.ExceptionalProductID,
				Quantity:  capacity,
				Allocated: used,
				Requested: l.OrderedQty,
			}
		}
		allocated[line.ExceptionalProductID] += l.OrderedQty
		line.OrderedQty += l.OrderedQty
		out[idx] = domain.ExceptionalAllocation{
			ID:              uuid.New(),
			LineID:          line.ID,
			PurchaseOrderID: po.ID,
			Quantity:        l.OrderedQty,
			CreatedBy:       actorID,
			CreatedAt:       now,
		}
	}
	return out, nil
}

func orderDescription(req *domain.ExceptionalRequest, orderID uuid.UUID, allocations []domain.ExceptionalAllocation) string {
	parts := make([]string, len(allocations))
	for i, a := range allocations {
		line, _ := req.Line(a.LineID)
		parts[i] = fmt.Sprintf("%s +%d (%d/%d)", line.ProductName, a.Quantity, line.OrderedQty, line.Quantity)
	}
	return fmt.Sprintf("exceptional lines ordered on %s: %s", orderID, strings.Join(parts, ", "))
}
