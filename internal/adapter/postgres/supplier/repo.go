// Package supplier implements the supplier directory repository using PostgreSQL.
package supplier

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	postgres "github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/domain"
)

// score is read as text so decimal.Decimal never goes through float64.
var supplierColumns = []string{
	"id", "name", "contact", "email", "phone", "score::text AS score", "scored_at", "created_at",
}

// Repo provides supplier persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new supplier repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a supplier by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	query, args, err := postgres.Builder().
		Select(supplierColumns...).
		From("suppliers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get supplier: %w", err)
	}

	var row supplierRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "supplier", id)
	}

	s, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns every supplier, best score first.
func (r *Repo) List(ctx context.Context) ([]domain.Supplier, error) {
	query, args, err := postgres.Builder().
		Select(supplierColumns...).
		From("suppliers").
		OrderBy("suppliers.score DESC", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suppliers: %w", err)
	}

	var rows []supplierRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}

	out := make([]domain.Supplier, len(rows))
	for i, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// historySQL aggregates closed purchase orders per supplier. An order is on
// time when it was delivered no later than its expected date.
const historySQL = `
SELECT supplier_id,
       count(*) FILTER (WHERE status = 'DELIVERED')                                        AS delivered,
       count(*) FILTER (WHERE status = 'DELIVERED' AND delivered_at::date <= expected_date) AS on_time,
       count(*) FILTER (WHERE status = 'RETURNED')                                         AS returned,
       count(*) FILTER (WHERE status = 'CANCELLED')                                        AS cancelled
FROM purchase_orders
WHERE status IN ('DELIVERED', 'RETURNED', 'CANCELLED')
  AND created_at >= $1
GROUP BY supplier_id`

// History returns the closed-order history of every supplier with at least
// one order created since the given time.
func (r *Repo) History(ctx context.Context, since time.Time) ([]domain.SupplierHistory, error) {
	var rows []historyRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, historySQL, since); err != nil {
		return nil, fmt.Errorf("supplier history: %w", err)
	}

	out := make([]domain.SupplierHistory, len(rows))
	for i, row := range rows {
		out[i] = domain.SupplierHistory(row)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// UpdateScore stores a supplier's score.
func (r *Repo) UpdateScore(ctx context.Context, id uuid.UUID, score decimal.Decimal, at time.Time) error {
	query, args, err := postgres.Builder().
		Update("suppliers").
		Set("score", squirrel.Expr("?::numeric", score.StringFixed(2))).
		Set("scored_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update score: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "supplier", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type supplierRow struct {
	ID        uuid.UUID  `db:"id"`
	Name      string     `db:"name"`
	Contact   *string    `db:"contact"`
	Email     *string    `db:"email"`
	Phone     *string    `db:"phone"`
	Score     string     `db:"score"`
	ScoredAt  *time.Time `db:"scored_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (row supplierRow) toDomain() (domain.Supplier, error) {
	score, err := decimal.NewFromString(row.Score)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("supplier %s score %q: %w", row.ID, row.Score, err)
	}
	return domain.Supplier{
		ID:        row.ID,
		Name:      row.Name,
		Contact:   row.Contact,
		Email:     row.Email,
		Phone:     row.Phone,
		Score:     score,
		ScoredAt:  row.ScoredAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

type historyRow struct {
	SupplierID uuid.UUID `db:"supplier_id"`
	Delivered  int       `db:"delivered"`
	OnTime     int       `db:"on_time"`
	Returned   int       `db:"returned"`
	Cancelled  int       `db:"cancelled"`
}
