package purchasing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// Validate moves an UNVALIDATED order to VALIDATED.
func (s *Service) Validate(ctx context.Context, orderID uuid.UUID) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleManager)
	if err != nil {
		return Result{}, err
	}
	if orderID == uuid.Nil {
		return Result{}, domain.NewValidationError("order_id", "required")
	}

	var (
		order  *domain.PurchaseOrder
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.lock(txCtx, orderID, domain.OrderStatusValidated, "validate")
		if err != nil {
			return err
		}

		now := s.now()
		order.Status = domain.OrderStatusValidated
		order.ValidatedBy = &actorID
		order.ValidatedAt = &now
		order.UpdatedAt = now

		if err := s.orders.Update(txCtx, order); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionOrderValidated, order, "purchase order validated"); err != nil {
			return err
		}

		events = creatorEvent(domain.NotificationOrderValidated, order, nil)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logTransition(ctx, "purchase order validated", actorID, order)
	return Result{Order: order, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// Receive marks a VALIDATED order DELIVERED and increments stock for its
// catalog lines in the same transaction.
func (s *Service) Receive(ctx context.Context, input ReceiveInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	var (
		order   *domain.PurchaseOrder
		outcome fulfillment.Outcome
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.lock(txCtx, input.OrderID, domain.OrderStatusDelivered, "receive")
		if err != nil {
			return err
		}

		now := s.now()
		order.Status = domain.OrderStatusDelivered
		order.DeliveredAt = &now
		order.UpdatedAt = now
		if input.InvoiceRef != nil {
			ref := strings.TrimSpace(*input.InvoiceRef)
			order.InvoiceRef = &ref
		}

		outcome, err = s.fulfiller.OrderDelivered(txCtx, order, actorID)
		if err != nil {
			return err
		}

		if err := s.orders.Update(txCtx, order); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logTransition(ctx, "purchase order received", actorID, order)
	return Result{
		Order:    order,
		Changes:  outcome.Changes,
		Warnings: s.notifier.Dispatch(ctx, outcome.Events),
	}, nil
}

// ReturnOrder sends a VALIDATED order back to the supplier. Stock is not
// touched.
func (s *Service) ReturnOrder(ctx context.Context, input ReasonInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if err := input.validate(true); err != nil {
		return Result{}, err
	}
	reason := strings.TrimSpace(input.Reason)

	var (
		order  *domain.PurchaseOrder
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.lock(txCtx, input.OrderID, domain.OrderStatusReturned, "return")
		if err != nil {
			return err
		}

		order.Status = domain.OrderStatusReturned
		order.ReturnReason = &reason
		order.UpdatedAt = s.now()

		if err := s.orders.Update(txCtx, order); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionOrderReturned, order, "purchase order returned: "+reason); err != nil {
			return err
		}

		events = creatorEvent(domain.NotificationOrderReturned, order, map[string]any{"reason": reason})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logTransition(ctx, "purchase order returned", actorID, order)
	return Result{Order: order, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// Cancel abandons an order that has not been delivered or returned. The
// reason is optional.
func (s *Service) Cancel(ctx context.Context, input ReasonInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse, domain.UserRoleManager)
	if err != nil {
		return Result{}, err
	}
	if err := input.validate(false); err != nil {
		return Result{}, err
	}

	var (
		order  *domain.PurchaseOrder
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.lock(txCtx, input.OrderID, domain.OrderStatusCancelled, "cancel")
		if err != nil {
			return err
		}

		desc := "purchase order cancelled"
		payload := map[string]any{}
		if reason := strings.TrimSpace(input.Reason); reason != "" {
			order.CancelReason = &reason
			desc += ": " + reason
			payload["reason"] = reason
		}
		order.Status = domain.OrderStatusCancelled
		order.UpdatedAt = s.now()

		if err := s.orders.Update(txCtx, order); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionOrderCancelled, order, desc); err != nil {
			return err
		}

		events = creatorEvent(domain.NotificationOrderCancelled, order, payload)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logTransition(ctx, "purchase order cancelled", actorID, order)
	return Result{Order: order, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// lock loads the order for update and checks it may move to next.
func (s *Service) lock(ctx context.Context, id uuid.UUID, next domain.OrderStatus, op string) (*domain.PurchaseOrder, error) {
	order, err := s.orders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domain.NewTransitionError(domain.EntityTypePurchaseOrder, order.ID, order.Status, op)
	}
	return order, nil
}

func (s *Service) logTransition(ctx context.Context, msg string, actorID uuid.UUID, o *domain.PurchaseOrder) {
	s.log.InfoContext(ctx, msg,
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("purchase_order_id", o.ID.String()),
		slog.String("status", o.Status.String()),
	)
}
