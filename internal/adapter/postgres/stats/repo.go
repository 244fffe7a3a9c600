// Package stats computes dashboard aggregates over the operational tables.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/domain"
)

// Repo runs read-only aggregate queries. Nothing here takes locks.
type Repo struct {
	db postgres.Querier
}

// New creates a new stats repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func within(column string, w domain.StatsWindow) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{column: w.From},
		squirrel.Lt{column: w.To},
	}
}

// Totals returns headline counts. Approved requests include those already
// taken.
func (r *Repo) Totals(ctx context.Context) (domain.StatsTotals, error) {
	query, args, err := postgres.Builder().
		Select(
			"(SELECT count(*) FROM purchase_orders)::int AS orders",
			"(SELECT count(*) FROM staff WHERE active)::int AS staff",
			"(SELECT count(*) FROM suppliers)::int AS suppliers",
			"(SELECT count(*) FROM requests WHERE status IN ('APPROVED', 'TAKEN'))::int AS approved_requests",
		).
		ToSql()
	if err != nil {
		return domain.StatsTotals{}, fmt.Errorf("build totals: %w", err)
	}

	var row totalsRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.StatsTotals{}, fmt.Errorf("select totals: %w", err)
	}
	return domain.StatsTotals(row), nil
}

// RequestsPerMonth counts catalog and exceptional requests by UTC calendar
// month of submission, oldest first. Months without requests are omitted.
func (r *Repo) RequestsPerMonth(ctx context.Context, w domain.StatsWindow) ([]domain.MonthlyRequests, error) {
	query, args, err := postgres.Builder().
		Select(
			"date_trunc('month', r.created_at AT TIME ZONE 'UTC') AS month",
			"(count(*) FILTER (WHERE NOT r.exceptional))::int AS requests",
			"(count(*) FILTER (WHERE r.exceptional))::int AS exceptional",
		).
		From("(SELECT created_at, false AS exceptional FROM requests " +
			"UNION ALL SELECT created_at, true FROM exceptional_requests) r").
		Where(within("r.created_at", w)).
		GroupBy("1").
		OrderBy("1").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build requests per month: %w", err)
	}

	var rows []monthRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select requests per month: %w", err)
	}

	out := make([]domain.MonthlyRequests, len(rows))
	for i, row := range rows {
		out[i] = domain.MonthlyRequests{Month: row.Month.UTC(), Requests: row.Requests, Exceptional: row.Exceptional}
	}
	return out, nil
}

// TopProducts ranks catalog products by requested quantity, then name.
func (r *Repo) TopProducts(ctx context.Context, w domain.StatsWindow, limit int) ([]domain.ProductDemand, error) {
	query, args, err := postgres.Builder().
		Select(
			"l.product_id",
			"p.name",
			"count(DISTINCT l.request_id)::int AS requests",
			"sum(l.requested_qty)::int AS quantity",
		).
		From("request_lines l").
		Join("requests r ON r.id = l.request_id").
		Join("products p ON p.id = l.product_id").
		Where(within("r.created_at", w)).
		GroupBy("l.product_id", "p.name").
		OrderBy("quantity DESC", "p.name").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top products: %w", err)
	}

	var rows []productRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select top products: %w", err)
	}

	out := make([]domain.ProductDemand, len(rows))
	for i, row := range rows {
		out[i] = domain.ProductDemand(row)
	}
	return out, nil
}

// OrdersPerSupplier counts purchase orders created in the window per
// supplier, busiest first.
func (r *Repo) OrdersPerSupplier(ctx context.Context, w domain.StatsWindow) ([]domain.SupplierOrders, error) {
	query, args, err := postgres.Builder().
		Select(
			"s.id AS supplier_id",
			"s.name",
			"count(*)::int AS orders",
			"(count(*) FILTER (WHERE o.status = 'DELIVERED'))::int AS delivered",
			"(count(*) FILTER (WHERE o.status = 'RETURNED'))::int AS returned",
			"(count(*) FILTER (WHERE o.status = 'CANCELLED'))::int AS cancelled",
		).
		From("purchase_orders o").
		Join("suppliers s ON s.id = o.supplier_id").
		Where(within("o.created_at", w)).
		GroupBy("s.id", "s.name").
		OrderBy("orders DESC", "s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build orders per supplier: %w", err)
	}

	var rows []supplierRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select orders per supplier: %w", err)
	}

	out := make([]domain.SupplierOrders, len(rows))
	for i, row := range rows {
		out[i] = domain.SupplierOrders(row)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type totalsRow struct {
	Orders           int `db:"orders"`
	Staff            int `db:"staff"`
	Suppliers        int `db:"suppliers"`
	ApprovedRequests int `db:"approved_requests"`
}

type monthRow struct {
	Month       time.Time `db:"month"`
	Requests    int       `db:"requests"`
	Exceptional int       `db:"exceptional"`
}

type productRow struct {
	ProductID uuid.UUID `db:"product_id"`
	Name      string    `db:"name"`
	Requests  int       `db:"requests"`
	Quantity  int       `db:"quantity"`
}

type supplierRow struct {
	SupplierID uuid.UUID `db:"supplier_id"`
	Name       string    `db:"name"`
	Orders     int       `db:"orders"`
	Delivered  int       `db:"delivered"`
	Returned   int       `db:"returned"`
	Cancelled  int       `db:"cancelled"`
}
