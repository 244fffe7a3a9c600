package exceptional

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

// Accept moves a PENDING exceptional request to ACCEPTED.
func (s *Service) Accept(ctx context.Context, requestID uuid.UUID) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleManager)
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
		if !req.Status.CanTransitionTo(domain.ExceptionalStatusAccepted) {
			return domain.NewTransitionError(domain.EntityTypeExceptional, req.ID, req.Status, "accept")
		}

		now := s.now()
		req.Status = domain.ExceptionalStatusAccepted
		req.ApprovedAt = &now
		req.DecidedBy = &actorID
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update exceptional request: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionExceptionalAccepted, req,
			"exceptional request accepted: "+describeLines(req.Lines)); err != nil {
			return err
		}

		events = requesterEvent(domain.NotificationExceptionalAccepted, req, nil)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "exceptional request accepted",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("exceptional_request_id", req.ID.String()),
	)

	return Result{Request: req, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// Reject moves a PENDING exceptional request to REJECTED with a reason.
func (s *Service) Reject(ctx context.Context, input RejectInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleManager)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}
	reason := strings.TrimSpace(input.Reason)

	var (
		req    *domain.ExceptionalRequest
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, input.RequestID)
		if err != nil {
			return err
		}
		if !req.Status.CanTransitionTo(domain.ExceptionalStatusRejected) {
			return domain.NewTransitionError(domain.EntityTypeExceptional, req.ID, req.Status, "reject")
		}

		req.Status = domain.ExceptionalStatusRejected
		req.DecidedBy = &actorID
		req.RejectionReason = &reason
		req.UpdatedAt = s.now()

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update exceptional request: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionExceptionalRejected, req,
			"exceptional request rejected: "+reason); err != nil {
			return err
		}

		events = requesterEvent(domain.NotificationExceptionalRejected, req, map[string]any{"reason": reason})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "exceptional request rejected",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("exceptional_request_id", req.ID.String()),
	)

	return Result{Request: req, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

func describeLines(lines []domain.ExceptionalLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("%s x%d", l.ProductName, l.Quantity)
	}
	return strings.Join(parts, ", ")
}
