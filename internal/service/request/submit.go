package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// Submit creates a PENDING request for the calling staff member. Every
// product must exist; stock is not checked until approval.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Result, error) {
	actorID, err := access.Require(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	lines := make([]domain.StockLine, len(input.Lines))
	reqLines := make([]domain.RequestLine, len(input.Lines))
	for i, l := range input.Lines {
		lines[i] = domain.StockLine{ProductID: l.ProductID, Quantity: l.Quantity}
		reqLines[i] = domain.RequestLine{ProductID: l.ProductID, RequestedQty: l.Quantity}
	}

	// Availability is ignored here; the call fails only for unknown products.
	if _, err := s.stock.CheckAvailability(ctx, lines); err != nil {
		return Result{}, fmt.Errorf("check products: %w", err)
	}

	now := s.now()
	req := &domain.Request{
		ID:          uuid.New(),
		RequesterID: actorID,
		Status:      domain.RequestStatusPending,
		Lines:       reqLines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.requests.Create(txCtx, req)
	})
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	s.log.InfoContext(ctx, "request submitted",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("stock_request_id", req.ID.String()),
		slog.Int("lines", len(req.Lines)),
	)

	return Result{Request: req}, nil
}
