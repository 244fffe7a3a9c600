package request

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

// Approve moves a PENDING request to APPROVED with the given quantities.
// Every request line must be covered exactly once with
// 1 <= approved <= requested. Stock is checked but not reserved; an
// insufficient line fails the approval and leaves the request PENDING.
func (s *Service) Approve(ctx context.Context, input ApproveInput) (Result, error) {
	actorID, err := access.Require(ctx, domain.UserRoleManager)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	var (
		req    *domain.Request
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, input.RequestID)
		if err != nil {
			return err
		}
		if !req.Status.CanTransitionTo(domain.RequestStatusApproved) {
			return domain.NewTransitionError(domain.EntityTypeRequest, req.ID, req.Status, "approve")
		}

		approved, err := matchApproval(req, input.Lines)
		if err != nil {
			return err
		}

		avail, err := s.stock.CheckAvailability(txCtx, approved)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if err := avail.Err(); err != nil {
			return err
		}

		now := s.now()
		for i := range req.Lines {
			qty := approved[i].Quantity
			req.Lines[i].ApprovedQty = &qty
		}
		req.Status = domain.RequestStatusApproved
		req.DecidedBy = &actorID
		req.DecidedAt = &now
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update request: %w", err)
		}

		if err := s.record(txCtx, actorID, domain.AuditActionRequestApproved, req, approvalDescription(req)); err != nil {
			return err
		}

		events = []domain.NotificationEvent{{
			Kind:       domain.NotificationRequestApproved,
			Recipients: []uuid.UUID{req.RequesterID},
			Payload: map[string]any{
				"requestId": req.ID.String(),
				"partial":   req.PartiallyApproved(),
				"lines":     approvalPayload(req),
			},
		}}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "request approved",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("stock_request_id", req.ID.String()),
		slog.Bool("partial", req.PartiallyApproved()),
	)

	return Result{Request: req, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// Reject moves a PENDING request to REJECTED with a reason.
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
		req    *domain.Request
		events []domain.NotificationEvent
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.requests.GetForUpdate(txCtx, input.RequestID)
		if err != nil {
			return err
		}
		if !req.Status.CanTransitionTo(domain.RequestStatusRejected) {
			return domain.NewTransitionError(domain.EntityTypeRequest, req.ID, req.Status, "reject")
		}

		now := s.now()
		req.Status = domain.RequestStatusRejected
		req.DecidedBy = &actorID
		req.DecidedAt = &now
		req.RejectionReason = &reason
		req.UpdatedAt = now

		if err := s.requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		if err := s.record(txCtx, actorID, domain.AuditActionRequestRejected, req, "request rejected: "+reason); err != nil {
			return err
		}

		events = []domain.NotificationEvent{{
			Kind:       domain.NotificationRequestRejected,
			Recipients: []uuid.UUID{req.RequesterID},
			Payload:    map[string]any{"requestId": req.ID.String(), "reason": reason},
		}}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "request rejected",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("stock_request_id", req.ID.String()),
	)

	return Result{Request: req, Warnings: s.notifier.Dispatch(ctx, events)}, nil
}

// matchApproval returns the approved quantities aligned with req.Lines.
func matchApproval(req *domain.Request, lines []ApproveLine) ([]domain.StockLine, error) {
	requested := make(map[uuid.UUID]int, len(req.Lines))
	for _, l := range req.Lines {
		requested[l.ProductID] = l.RequestedQty
	}

	var errs []domain.FieldError
	approved := make(map[uuid.UUID]int, len(lines))
	for idx, l := range lines {
		field := fmt.Sprintf("lines[%d]", idx)
		want, ok := requested[l.ProductID]
		switch {
		case !ok:
			errs = append(errs, domain.FieldError{Field: field + ".product_id", Message: "product is not on the request"})
		case approved[l.ProductID] > 0:
			errs = append(errs, domain.FieldError{Field: field + ".product_id", Message: "duplicate product"})
		case l.ApprovedQty > want:
			errs = append(errs, domain.FieldError{Field: field + ".approved_qty", Message: fmt.Sprintf("exceeds requested quantity %d", want)})
		}
		approved[l.ProductID] = l.ApprovedQty
	}

	out := make([]domain.StockLine, len(req.Lines))
	for i, l := range req.Lines {
		if _, ok := approved[l.ProductID]; !ok {
			errs = append(errs, domain.FieldError{Field: "lines", Message: fmt.Sprintf("missing approval for product %s", l.ProductID)})
		}
		out[i] = domain.StockLine{ProductID: l.ProductID, Quantity: approved[l.ProductID]}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return out, nil
}

func approvalDescription(req *domain.Request) string {
	parts := make([]string, len(req.Lines))
	for i, l := range req.Lines {
		parts[i] = fmt.Sprintf("%s %d/%d", l.ProductID, *l.ApprovedQty, l.RequestedQty)
	}
	desc := "request approved: " + strings.Join(parts, ", ")
	if req.PartiallyApproved() {
		desc += " (reduced)"
	}
	return desc
}

func approvalPayload(req *domain.Request) []map[string]any {
	out := make([]map[string]any, len(req.Lines))
	for i, l := range req.Lines {
		out[i] = map[string]any{
			"productId": l.ProductID.String(),
			"requested": l.RequestedQty,
			"approved":  *l.ApprovedQty,
		}
	}
	return out
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action domain.AuditAction, req *domain.Request, desc string) error {
	entity := domain.EntityTypeRequest
	id := req.ID
	err := s.audit.Log(ctx, domain.AuditEntry{
		ID:                 uuid.New(),
		ActorID:            actorID,
		ActionType:         action,
		EntityType:         &entity,
		EntityID:           &id,
		AffectedProductIDs: req.ProductIDs(),
		Description:        desc,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}
