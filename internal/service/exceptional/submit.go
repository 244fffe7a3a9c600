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

// Submit creates a PENDING exceptional request. Lines naming a product
// that does not exist yet create it; names match case-insensitively.
// Two lines resolving to the same product are rejected.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Result, error) {
	actorID, err := access.Require(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	now := s.now()
	req := &domain.ExceptionalRequest{
		ID:          uuid.New(),
		RequesterID: actorID,
		Status:      domain.ExceptionalStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		products, err := s.resolveProducts(txCtx, input.Lines)
		if err != nil {
			return err
		}

		seen := make(map[uuid.UUID]bool, len(products))
		var errs []domain.FieldError
		req.Lines = make([]domain.ExceptionalLine, len(products))
		for i, p := range products {
			if seen[p.ID] {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("lines[%d]", i), Message: "duplicate product"})
			}
			seen[p.ID] = true
			req.Lines[i] = domain.ExceptionalLine{
				ID:                   uuid.New(),
				ExceptionalProductID: p.ID,
				ProductName:          p.Name,
				Quantity:             input.Lines[i].Quantity,
			}
		}
		if len(errs) > 0 {
			return domain.NewValidationErrors(errs)
		}

		if err := s.requests.Create(txCtx, req); err != nil {
			return fmt.Errorf("create exceptional request: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "exceptional request submitted",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("exceptional_request_id", req.ID.String()),
		slog.Int("lines", len(req.Lines)),
	)

	return Result{Request: req}, nil
}

// resolveProducts returns one product per input line, in input order.
func (s *Service) resolveProducts(ctx context.Context, lines []LineInput) ([]domain.ExceptionalProduct, error) {
	var ids []uuid.UUID
	for _, l := range lines {
		if l.ExceptionalProductID != nil {
			ids = append(ids, *l.ExceptionalProductID)
		}
	}

	known := make(map[uuid.UUID]domain.ExceptionalProduct, len(ids))
	if len(ids) > 0 {
		found, err := s.requests.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("get exceptional products: %w", err)
		}
		for _, p := range found {
			known[p.ID] = p
		}
	}

	out := make([]domain.ExceptionalProduct, len(lines))
	for i, l := range lines {
		if l.ExceptionalProductID != nil {
			p, ok := known[*l.ExceptionalProductID]
			if !ok {
				return nil, fmt.Errorf("exceptional product %s: %w", *l.ExceptionalProductID, domain.ErrNotFound)
			}
			out[i] = p
			continue
		}

		var brand *string
		if l.Brand != nil {
			if b := strings.TrimSpace(*l.Brand); b != "" {
				brand = &b
			}
		}
		p, err := s.requests.FindOrCreateProduct(ctx, strings.TrimSpace(l.Name), brand)
		if err != nil {
			return nil, fmt.Errorf("resolve exceptional product %q: %w", l.Name, err)
		}
		out[i] = p
	}
	return out, nil
}
