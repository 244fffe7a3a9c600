package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// CheckAvailability reports, without locking or writing, which lines
// exceed current on-hand stock. Duplicate product ids are summed.
func (s *Service) CheckAvailability(ctx context.Context, lines []domain.StockLine) (domain.Availability, error) {
	if err := validateLines(lines); err != nil {
		return domain.Availability{}, err
	}

	merged := domain.MergeStockLines(lines)
	products, err := s.stock.GetProducts(ctx, productIDs(merged))
	if err != nil {
		return domain.Availability{}, fmt.Errorf("get products: %w", err)
	}

	byID, err := indexProducts(products, merged)
	if err != nil {
		return domain.Availability{}, err
	}

	return domain.Availability{Insufficient: shortfalls(merged, byID)}, nil
}

// Decrement removes stock for every line atomically. Rows are locked and
// re-checked inside the transaction; if any line cannot be served nothing is
// written and an InsufficientStockError lists every short line.
func (s *Service) Decrement(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error) {
	return s.apply(ctx, m, -1)
}

// Increment adds stock for every line atomically.
func (s *Service) Increment(ctx context.Context, m domain.StockMutation) ([]domain.StockChange, error) {
	return s.apply(ctx, m, 1)
}

func (s *Service) apply(ctx context.Context, m domain.StockMutation, sign int) ([]domain.StockChange, error) {
	if err := validateMutation(m); err != nil {
		return nil, err
	}

	merged := domain.MergeStockLines(m.Lines)
	var changes []domain.StockChange

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		products, err := s.stock.LockProducts(txCtx, productIDs(merged))
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}

		byID, err := indexProducts(products, merged)
		if err != nil {
			return err
		}

		if sign < 0 {
			if short := shortfalls(merged, byID); len(short) > 0 {
				return &domain.InsufficientStockError{Shortfalls: short}
			}
		}

		now := s.now()
		changes = make([]domain.StockChange, 0, len(merged))
		movements := make([]domain.StockMovement, 0, len(merged))
		for _, line := range merged {
			p := byID[line.ProductID]
			delta := sign * line.Quantity
			current := p.OnHand + delta

			if err := s.stock.SetOnHand(txCtx, p.ID, current); err != nil {
				return fmt.Errorf("set on_hand: %w", err)
			}

			changes = append(changes, domain.StockChange{
				ProductID: p.ID,
				Previous:  p.OnHand,
				Current:   current,
				Threshold: p.MinimumThreshold,
				Status:    domain.ComputeStockStatus(current, p.MinimumThreshold),
			})
			movements = append(movements, newMovement(p.ID, delta, current, m, now))
		}

		if err := s.stock.InsertMovements(txCtx, movements); err != nil {
			return fmt.Errorf("insert movements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stock mutated",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("actor_id", m.ActorID.String()),
		slog.String("reason", m.Reason),
		slog.Int("lines", len(changes)),
		slog.Int("sign", sign),
	)

	return changes, nil
}

func newMovement(productID uuid.UUID, delta, balance int, m domain.StockMutation, now time.Time) domain.StockMovement {
	mv := domain.StockMovement{
		ID:           uuid.New(),
		ProductID:    productID,
		Delta:        delta,
		BalanceAfter: balance,
		Reason:       m.Reason,
		ActorID:      m.ActorID,
		CreatedAt:    now,
	}
	if m.Ref != nil {
		refType, refID := m.Ref.Type, m.Ref.ID
		mv.RefType = &refType
		mv.RefID = &refID
	}
	return mv
}

func validateMutation(m domain.StockMutation) error {
	var errs []domain.FieldError
	if m.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if strings.TrimSpace(m.Reason) == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if err := validateLines(m.Lines); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateLines(lines []domain.StockLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("lines", "at least one line required")
	}
	var errs []domain.FieldError
	for i, l := range lines {
		if l.ProductID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("lines[%d].product_id", i), Message: "required"})
		}
		if l.Quantity < 1 {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("lines[%d].quantity", i), Message: "must be at least 1"})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func productIDs(lines []domain.StockLine) []uuid.UUID {
	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	return ids
}

// indexProducts maps products by id and fails with ErrNotFound on the first
// line whose product does not exist.
func indexProducts(products []domain.Product, lines []domain.StockLine) (map[uuid.UUID]domain.Product, error) {
	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, l := range lines {
		if _, ok := byID[l.ProductID]; !ok {
			return nil, fmt.Errorf("product %s: %w", l.ProductID, domain.ErrNotFound)
		}
	}
	return byID, nil
}

func shortfalls(lines []domain.StockLine, byID map[uuid.UUID]domain.Product) []domain.Shortfall {
	var out []domain.Shortfall
	for _, l := range lines {
		p := byID[l.ProductID]
		if p.OnHand < l.Quantity {
			out = append(out, domain.Shortfall{ProductID: l.ProductID, Available: p.OnHand, Requested: l.Quantity})
		}
	}
	return out
}
