// Package stats assembles the management dashboard.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

const (
	DefaultMonths = 12
	DefaultTop    = 10
	MaxTop        = 50

	maxWindow = 5 * 366 * 24 * time.Hour
)

type statsRepo interface {
	Totals(ctx context.Context) (domain.StatsTotals, error)
	RequestsPerMonth(ctx context.Context, w domain.StatsWindow) ([]domain.MonthlyRequests, error)
	TopProducts(ctx context.Context, w domain.StatsWindow, limit int) ([]domain.ProductDemand, error)
	OrdersPerSupplier(ctx context.Context, w domain.StatsWindow) ([]domain.SupplierOrders, error)
}

// Service reads dashboard aggregates.
type Service struct {
	repo statsRepo
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new stats service.
func NewService(log *slog.Logger, repo statsRepo) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "stats"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// DashboardInput selects the window and how many products to rank. Zero
// values fall back to the last DefaultMonths calendar months and DefaultTop.
type DashboardInput struct {
	From *time.Time
	To   *time.Time
	Top  int
}

// Validate checks all fields and collects all errors.
func (i DashboardInput) Validate() error {
	var errs []domain.FieldError
	if i.From != nil && i.To != nil {
		if !i.From.Before(*i.To) {
			errs = append(errs, domain.FieldError{Field: "from", Message: "must be before to"})
		} else if i.To.Sub(*i.From) > maxWindow {
			errs = append(errs, domain.FieldError{Field: "from", Message: "window longer than 5 years"})
		}
	}
	if i.Top < 0 || i.Top > MaxTop {
		errs = append(errs, domain.FieldError{Field: "top", Message: fmt.Sprintf("must be between 1 and %d", MaxTop)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// window resolves the input against now. The default window starts on the
// first day of the month DefaultMonths-1 months ago.
func (i DashboardInput) window(now time.Time) domain.StatsWindow {
	w := domain.StatsWindow{To: now}
	if i.To != nil {
		w.To = i.To.UTC()
	}
	if i.From != nil {
		w.From = i.From.UTC()
	} else {
		first := time.Date(w.To.Year(), w.To.Month(), 1, 0, 0, 0, 0, time.UTC)
		w.From = first.AddDate(0, -(DefaultMonths - 1), 0)
	}
	return w
}

// Dashboard returns headline totals, requests per month, the most requested
// products and orders per supplier. The four reads run concurrently.
func (s *Service) Dashboard(ctx context.Context, input DashboardInput) (domain.Dashboard, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager); err != nil {
		return domain.Dashboard{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Dashboard{}, err
	}

	top := input.Top
	if top == 0 {
		top = DefaultTop
	}
	w := input.window(s.now())
	if !w.From.Before(w.To) {
		return domain.Dashboard{}, domain.NewValidationError("from", "must be before to")
	}

	out := domain.Dashboard{Window: w}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if out.Totals, err = s.repo.Totals(gctx); err != nil {
			return fmt.Errorf("totals: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if out.RequestsPerMonth, err = s.repo.RequestsPerMonth(gctx, w); err != nil {
			return fmt.Errorf("requests per month: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if out.TopProducts, err = s.repo.TopProducts(gctx, w, top); err != nil {
			return fmt.Errorf("top products: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if out.OrdersPerSupplier, err = s.repo.OrdersPerSupplier(gctx, w); err != nil {
			return fmt.Errorf("orders per supplier: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}

	s.log.DebugContext(ctx, "dashboard computed",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.Time("from", w.From),
		slog.Time("to", w.To),
	)
	return out, nil
}
