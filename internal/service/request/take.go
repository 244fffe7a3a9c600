package request

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

// MarkTaken hands an APPROVED request over to its requester. The approved
// quantities are decremented in the same transaction; if stock no longer
// covers them the request stays APPROVED and the shortfall is returned.
// A second call observes TAKEN and fails with a TransitionError.
func (s *Service) MarkTaken(ctx context.Context, requestID uuid.UUID) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return Result{}, err
	}
	if requestID == uuid.Nil {
		return Result{}, domain.NewValidationError("request_id", "required")
	}

	var (
		req     *domain.Request
		outcome fulfillment.Outcome
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if !req.Status.CanTransitionTo(domain.RequestStatusTaken) {
			return domain.NewTransitionError(domain.EntityTypeRequest, req.ID, req.Status, "take")
		}

		outcome, err = s.fulfiller.RequestTaken(txCtx, req, actorID)
		if err != nil {
			return err
		}

		now := s.now()
		req.Status = domain.RequestStatusTaken
		req.TakenBy = &actorID
		req.TakenAt = &now
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "request taken",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("stock_request_id", req.ID.String()),
		slog.Int("stock_changes", len(outcome.Changes)),
	)

	return Result{
		Request:  req,
		Changes:  outcome.Changes,
		Warnings: s.notifier.Dispatch(ctx, outcome.Events),
	}, nil
}
