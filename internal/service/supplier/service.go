// Package supplier maintains the supplier directory scores.
package supplier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// DefaultWindow is how far back order history is considered.
const DefaultWindow = 365 * 24 * time.Hour

type supplierRepo interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	History(ctx context.Context, since time.Time) ([]domain.SupplierHistory, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score decimal.Decimal, at time.Time) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service lists suppliers and recomputes their scores.
type Service struct {
	repo   supplierRepo
	tx     txManager
	window time.Duration
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new supplier service. A non-positive window falls
// back to DefaultWindow.
func NewService(log *slog.Logger, repo supplierRepo, tx txManager, window time.Duration) *Service {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{
		repo:   repo,
		tx:     tx,
		window: window,
		log:    log.With("service", "supplier"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ScoreChange is one recomputed supplier score.
type ScoreChange struct {
	SupplierID uuid.UUID
	Score      decimal.Decimal
	Orders     int
}

// RescoreResult lists the updated scores and how many suppliers had no
// closed orders in the window and were left untouched.
type RescoreResult struct {
	Updated []ScoreChange
	Skipped int
}

// List returns every supplier.
func (s *Service) List(ctx context.Context) ([]domain.Supplier, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, err
	}
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// Rescore recomputes every supplier score from the closed purchase orders
// of the configured window. All scores are written in one transaction.
func (s *Service) Rescore(ctx context.Context) (RescoreResult, error) {
	actorID, err := access.Require(ctx, domain.UserRoleManager)
	if err != nil {
		return RescoreResult{}, err
	}

	now := s.now()
	var res RescoreResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		res = RescoreResult{}
		history, err := s.repo.History(txCtx, now.Add(-s.window))
		if err != nil {
			return err
		}
		for _, h := range history {
			score, ok := Score(h)
			if !ok {
				res.Skipped++
				continue
			}
			if err := s.repo.UpdateScore(txCtx, h.SupplierID, score, now); err != nil {
				return fmt.Errorf("update score: %w", err)
			}
			res.Updated = append(res.Updated, ScoreChange{SupplierID: h.SupplierID, Score: score, Orders: h.Total()})
		}
		return nil
	})
	if err != nil {
		return RescoreResult{}, err
	}

	s.log.InfoContext(ctx, "suppliers rescored",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.Int("updated", len(res.Updated)),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}
