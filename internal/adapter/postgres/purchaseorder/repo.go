// Package purchaseorder implements the supplier purchase order repository using PostgreSQL.
package purchaseorder

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

var orderColumns = []string{
	"id", "supplier_id", "status", "expected_date", "created_by", "validated_by", "validated_at",
	"delivered_at", "return_reason", "cancel_reason", "invoice_ref", "source_order_id",
	"created_at", "updated_at",
}

// Repo provides purchase order persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new purchase order repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a purchase order with its lines.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns a purchase order with its lines and locks the order
// row until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.PurchaseOrder, error) {
	b := postgres.Builder().
		Select(orderColumns...).
		From("purchase_orders").
		Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get purchase order: %w", err)
	}

	var row orderRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "purchase_order", id)
	}

	lines, err := r.linesByOrder(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	o := row.toDomain(lines[id])
	return &o, nil
}

// List returns a page of purchase orders, newest first, and the total
// matching the filter.
func (r *Repo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, int, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": filter.Status.String()})
	}
	if filter.SupplierID != nil {
		where = append(where, squirrel.Eq{"supplier_id": *filter.SupplierID})
	}
	if filter.CreatedBy != nil {
		where = append(where, squirrel.Eq{"created_by": *filter.CreatedBy})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder().
		Select("count(*)").
		From("purchase_orders").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count purchase orders: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(orderColumns...).
		From("purchase_orders").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list purchase orders: %w", err)
	}

	var rows []orderRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.linesByOrder(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.PurchaseOrder, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain(lines[row.ID])
	}
	return out, total, nil
}

func (r *Repo) linesByOrder(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.OrderLine, error) {
	out := make(map[uuid.UUID][]domain.OrderLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := postgres.Builder().
		Select("id", "order_id", "kind", "product_id", "quantity", "reordered").
		From("purchase_order_lines").
		Where("order_id = ANY(?)", ids).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order lines: %w", err)
	}

	var rows []lineRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select purchase_order_lines: %w", err)
	}

	for _, row := range rows {
		out[row.OrderID] = append(out[row.OrderID], domain.OrderLine{
			ID:        row.ID,
			Kind:      domain.LineKind(row.Kind),
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Reordered: row.Reordered,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a purchase order and its lines.
func (r *Repo) Create(ctx context.Context, o *domain.PurchaseOrder) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder().
		Insert("purchase_orders").
		Columns("id", "supplier_id", "status", "expected_date", "created_by", "source_order_id", "created_at", "updated_at").
		Values(o.ID, o.SupplierID, o.Status.String(), o.ExpectedDate, o.CreatedBy, o.SourceOrderID, o.CreatedAt, o.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert purchase order: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "purchase_order", o.ID)
	}

	lines := postgres.Builder().
		Insert("purchase_order_lines").
		Columns("id", "order_id", "position", "kind", "product_id", "quantity")
	for i, l := range o.Lines {
		lines = lines.Values(l.ID, o.ID, i, l.Kind.String(), l.ProductID, l.Quantity)
	}

	query, args, err = lines.ToSql()
	if err != nil {
		return fmt.Errorf("build insert order lines: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "purchase_order", o.ID)
	}
	return nil
}

// Update writes the lifecycle fields of a purchase order. Lines are fixed
// at creation and are not touched.
func (r *Repo) Update(ctx context.Context, o *domain.PurchaseOrder) error {
	query, args, err := postgres.Builder().
		Update("purchase_orders").
		Set("status", o.Status.String()).
		Set("validated_by", o.ValidatedBy).
		Set("validated_at", o.ValidatedAt).
		Set("delivered_at", o.DeliveredAt).
		Set("return_reason", o.ReturnReason).
		Set("cancel_reason", o.CancelReason).
		Set("invoice_ref", o.InvoiceRef).
		Set("updated_at", o.UpdatedAt).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update purchase order: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "purchase_order", o.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase_order %s: %w", o.ID, domain.ErrNotFound)
	}
	return nil
}

// MarkLinesReordered flags lines of a returned order as covered by a new
// order.
func (r *Repo) MarkLinesReordered(ctx context.Context, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}

	query, args, err := postgres.Builder().
		Update("purchase_order_lines").
		Set("reordered", true).
		Where("id = ANY(?)", lineIDs).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark reordered: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark lines reordered: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type orderRow struct {
	ID            uuid.UUID  `db:"id"`
	SupplierID    uuid.UUID  `db:"supplier_id"`
	Status        string     `db:"status"`
	ExpectedDate  time.Time  `db:"expected_date"`
	CreatedBy     uuid.UUID  `db:"created_by"`
	ValidatedBy   *uuid.UUID `db:"validated_by"`
	ValidatedAt   *time.Time `db:"validated_at"`
	DeliveredAt   *time.Time `db:"delivered_at"`
	ReturnReason  *string    `db:"return_reason"`
	CancelReason  *string    `db:"cancel_reason"`
	InvoiceRef    *string    `db:"invoice_ref"`
	SourceOrderID *uuid.UUID `db:"source_order_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (row orderRow) toDomain(lines []domain.OrderLine) domain.PurchaseOrder {
	if lines == nil {
		lines = []domain.OrderLine{}
	}
	return domain.PurchaseOrder{
		ID:            row.ID,
		SupplierID:    row.SupplierID,
		Status:        domain.OrderStatus(row.Status),
		Lines:         lines,
		ExpectedDate:  row.ExpectedDate,
		CreatedBy:     row.CreatedBy,
		ValidatedBy:   row.ValidatedBy,
		ValidatedAt:   row.ValidatedAt,
		DeliveredAt:   row.DeliveredAt,
		ReturnReason:  row.ReturnReason,
		CancelReason:  row.CancelReason,
		InvoiceRef:    row.InvoiceRef,
		SourceOrderID: row.SourceOrderID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

type lineRow struct {
	ID        uuid.UUID `db:"id"`
	OrderID   uuid.UUID `db:"order_id"`
	Kind      string    `db:"kind"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Reordered bool      `db:"reordered"`
}
