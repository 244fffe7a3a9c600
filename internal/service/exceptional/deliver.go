package exceptional

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// MarkDelivered moves an ORDERED exceptional request to DELIVERED and
// tells the requester which products arrived.
func (s *Service) MarkDelivered(ctx context.Context, requestID uuid.UUID) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if requestID == uuid.Nil {
		return Result{}, domain.NewValidationError("request_id", "required")
	}

	var (
		req    *domain.ExceptionalRequest
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if !req.Status.CanTransitionTo(domain.ExceptionalStatusDelivered) {
			return domain.NewTransitionError(domain.EntityTypeExceptional, req.ID, req.Status, "deliver")
		}

		now := s.now()
		req.Status = domain.ExceptionalStatusDelivered
		req.DeliveredAt = &now
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update exceptional request: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionExceptionalDelivered, req,
			"exceptional request delivered: "+describeLines(req.Lines)); err != nil {
			return err
		}

		events = requesterEvent(domain.NotificationExceptionalDelivered, req, map[string]any{
			"products": deliveredProducts(req.Lines),
		})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "exceptional request delivered",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("exceptional_request_id", req.ID.String()),
	)

	return Result{Request: req, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// MarkTaken hands a DELIVERED exceptional request over to its requester.
// No stock is touched.
func (s *Service) MarkTaken(ctx context.Context, requestID uuid.UUID) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if requestID == uuid.Nil {
		return Result{}, domain.NewValidationError("request_id", "required")
	}

	var (
		req     *domain.ExceptionalRequest
		outcome fulfillment.Outcome
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if !req.Status.CanTransitionTo(domain.ExceptionalStatusTaken) {
			return domain.NewTransitionError(domain.EntityTypeExceptional, req.ID, req.Status, "take")
		}

		outcome, err = s.fulfiller.ExceptionalTaken(txCtx, req, actorID)
		if err != nil {
			return err
		}

		now := s.now()
		req.Status = domain.ExceptionalStatusTaken
		req.TakenAt = &now
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update exceptional request: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "exceptional request taken",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("exceptional_request_id", req.ID.String()),
	)

	return Result{Request: req, Warnings: s.notifier.Dispatch(ctx, outcome.Events)}, nil
}

func deliveredProducts(lines []domain.ExceptionalLine) []map[string]any {
	out := make([]map[string]any, len(lines))
	for i, l := range lines {
		out[i] = map[string]any{
			"exceptionalProductId": l.ExceptionalProductID.String(),
			"name":                 l.ProductName,
			"quantity":             l.Quantity,
		}
	}
	return out
}
