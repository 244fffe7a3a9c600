// Package exceptional implements persistence for exceptional (non-catalog)
// products, requests and their purchase order allocations.
package exceptional

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

var requestColumns = []string{
	"id", "requester_id", "status", "approved_at", "decided_by", "rejection_reason",
	"supplier_id", "expected_date", "delivered_at", "taken_at", "created_at", "updated_at",
}

// Repo provides exceptional request persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new exceptional request repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Exceptional products
// ---------------------------------------------------------------------------

// FindOrCreateProduct returns the exceptional product whose normalized name
// matches, creating it when absent. An existing product keeps its brand.
func (r *Repo) FindOrCreateProduct(ctx context.Context, name string, brand *string) (domain.ExceptionalProduct, error) {
	query, args, err := postgres.Builder().
		Insert("exceptional_products").
		Columns("id", "name", "name_normalized", "brand").
		Values(uuid.New(), name, domain.NormalizeName(name), brand).
		Suffix("ON CONFLICT (name_normalized) DO UPDATE SET name_normalized = EXCLUDED.name_normalized").
		Suffix("RETURNING id, name, brand, created_at").
		ToSql()
	if err != nil {
		return domain.ExceptionalProduct{}, fmt.Errorf("build upsert exceptional product: %w", err)
	}

	var row productRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.ExceptionalProduct{}, fmt.Errorf("upsert exceptional product %q: %w", name, err)
	}
	return row.toDomain(), nil
}

// GetProductsByIDs returns the exceptional products with the given ids.
func (r *Repo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ExceptionalProduct, error) {
	if len(ids) == 0 {
		return []domain.ExceptionalProduct{}, nil
	}

	query, args, err := postgres.Builder().
		Select("id", "name", "brand", "created_at").
		From("exceptional_products").
		Where("id = ANY(?)", ids).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get exceptional products: %w", err)
	}
	return r.selectProducts(ctx, query, args)
}

// SearchProducts looks up previously requested exceptional products by a
// case-insensitive name fragment. An empty search lists all, by name.
func (r *Repo) SearchProducts(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error) {
	b := postgres.Builder().
		Select("id", "name", "brand", "created_at").
		From("exceptional_products").
		OrderBy("name_normalized").
		Limit(uint64(limit))
	if norm := domain.NormalizeName(search); norm != "" {
		b = b.Where("name_normalized LIKE ?", "%"+norm+"%")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search exceptional products: %w", err)
	}
	return r.selectProducts(ctx, query, args)
}

func (r *Repo) selectProducts(ctx context.Context, query string, args []any) ([]domain.ExceptionalProduct, error) {
	var rows []productRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select exceptional_products: %w", err)
	}
	out := make([]domain.ExceptionalProduct, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Exceptional requests: read operations
// ---------------------------------------------------------------------------

// GetByID returns an exceptional request with its lines.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns an exceptional request with its lines and locks the
// request row until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.ExceptionalRequest, error) {
	b := postgres.Builder().
		Select(requestColumns...).
		From("exceptional_requests").
		Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get exceptional request: %w", err)
	}

	var row requestRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "exceptional_request", id)
	}

	lines, err := r.linesByRequest(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	req := row.toDomain(lines[id])
	return &req, nil
}

// List returns a page of exceptional requests, newest first, and the total
// matching the filter.
func (r *Repo) List(ctx context.Context, filter domain.ExceptionalFilter) ([]domain.ExceptionalRequest, int, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": filter.Status.String()})
	}
	if filter.RequesterID != nil {
		where = append(where, squirrel.Eq{"requester_id": *filter.RequesterID})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder().
		Select("count(*)").
		From("exceptional_requests").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count exceptional requests: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count exceptional requests: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(requestColumns...).
		From("exceptional_requests").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list exceptional requests: %w", err)
	}

	var rows []requestRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list exceptional requests: %w", err)
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.linesByRequest(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.ExceptionalRequest, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain(lines[row.ID])
	}
	return out, total, nil
}

func (r *Repo) linesByRequest(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.ExceptionalLine, error) {
	out := make(map[uuid.UUID][]domain.ExceptionalLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := postgres.Builder().
		Select("l.id", "l.request_id", "l.exceptional_product_id", "p.name AS product_name", "l.quantity", "l.ordered_qty").
		From("exceptional_request_lines l").
		Join("exceptional_products p ON p.id = l.exceptional_product_id").
		Where("l.request_id = ANY(?)", ids).
		OrderBy("l.request_id", "l.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exceptional lines: %w", err)
	}

	var rows []lineRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select exceptional_request_lines: %w", err)
	}

	for _, row := range rows {
		out[row.RequestID] = append(out[row.RequestID], domain.ExceptionalLine{
			ID:                   row.ID,
			ExceptionalProductID: row.ExceptionalProductID,
			ProductName:          row.ProductName,
			Quantity:             row.Quantity,
			OrderedQty:           row.OrderedQty,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Exceptional requests: write operations
// ---------------------------------------------------------------------------

// Create inserts an exceptional request and its lines.
func (r *Repo) Create(ctx context.Context, req *domain.ExceptionalRequest) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder().
		Insert("exceptional_requests").
		Columns("id", "requester_id", "status", "created_at", "updated_at").
		Values(req.ID, req.RequesterID, req.Status.String(), req.CreatedAt, req.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert exceptional request: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "exceptional_request", req.ID)
	}

	lines := postgres.Builder().
		Insert("exceptional_request_lines").
		Columns("id", "request_id", "position", "exceptional_product_id", "quantity", "ordered_qty")
	for i, l := range req.Lines {
		lines = lines.Values(l.ID, req.ID, i, l.ExceptionalProductID, l.Quantity, l.OrderedQty)
	}

	query, args, err = lines.ToSql()
	if err != nil {
		return fmt.Errorf("build insert exceptional lines: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "exceptional_request", req.ID)
	}
	return nil
}

// Update writes the lifecycle fields of an exceptional request and the
// ordered quantity of each line.
func (r *Repo) Update(ctx context.Context, req *domain.ExceptionalRequest) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder().
		Update("exceptional_requests").
		Set("status", req.Status.String()).
		Set("approved_at", req.ApprovedAt).
		Set("decided_by", req.DecidedBy).
		Set("rejection_reason", req.RejectionReason).
		Set("supplier_id", req.SupplierID).
		Set("expected_date", req.ExpectedDate).
		Set("delivered_at", req.DeliveredAt).
		Set("taken_at", req.TakenAt).
		Set("updated_at", req.UpdatedAt).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update exceptional request: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "exceptional_request", req.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exceptional_request %s: %w", req.ID, domain.ErrNotFound)
	}

	for _, l := range req.Lines {
		query, args, err := postgres.Builder().
			Update("exceptional_request_lines").
			Set("ordered_qty", l.OrderedQty).
			Where(squirrel.Eq{"id": l.ID, "request_id": req.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update exceptional line: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "exceptional_line", l.ID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Allocations
// ---------------------------------------------------------------------------

// InsertAllocations records quantities of exceptional lines placed on a
// purchase order.
func (r *Repo) InsertAllocations(ctx context.Context, allocations []domain.ExceptionalAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	insert := postgres.Builder().
		Insert("exceptional_order_allocations").
		Columns("id", "line_id", "purchase_order_id", "quantity", "created_by", "created_at")
	for _, a := range allocations {
		insert = insert.Values(a.ID, a.LineID, a.PurchaseOrderID, a.Quantity, a.CreatedBy, a.CreatedAt)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert allocations: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "allocation", allocations[0].ID)
	}
	return nil
}

// ListAllocations returns every allocation recorded for a request's lines,
// oldest first.
func (r *Repo) ListAllocations(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error) {
	query, args, err := postgres.Builder().
		Select("a.id", "a.line_id", "a.purchase_order_id", "a.quantity", "a.created_by", "a.created_at").
		From("exceptional_order_allocations a").
		Join("exceptional_request_lines l ON l.id = a.line_id").
		Where(squirrel.Eq{"l.request_id": requestID}).
		OrderBy("a.created_at", "a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list allocations: %w", err)
	}

	var rows []allocationRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select allocations: %w", err)
	}

	out := make([]domain.ExceptionalAllocation, len(rows))
	for i, row := range rows {
		out[i] = domain.ExceptionalAllocation(row)
	}
	return out, nil
}

// AllocatedOnOrder sums, per exceptional product, the quantity already
// allocated against a purchase order across all requests.
func (r *Repo) AllocatedOnOrder(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int, error) {
	query, args, err := postgres.Builder().
		Select("l.exceptional_product_id AS product_id", "sum(a.quantity)::int AS quantity").
		From("exceptional_order_allocations a").
		Join("exceptional_request_lines l ON l.id = a.line_id").
		Where(squirrel.Eq{"a.purchase_order_id": orderID}).
		GroupBy("l.exceptional_product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build allocated on order: %w", err)
	}

	var rows []struct {
		ProductID uuid.UUID `db:"product_id"`
		Quantity  int       `db:"quantity"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select allocated on order: %w", err)
	}

	out := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Quantity
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type productRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Brand     *string   `db:"brand"`
	CreatedAt time.Time `db:"created_at"`
}

func (row productRow) toDomain() domain.ExceptionalProduct {
	return domain.ExceptionalProduct{
		ID:        row.ID,
		Name:      row.Name,
		Brand:     row.Brand,
		CreatedAt: row.CreatedAt,
	}
}

type requestRow struct {
	ID              uuid.UUID  `db:"id"`
	RequesterID     uuid.UUID  `db:"requester_id"`
	Status          string     `db:"status"`
	ApprovedAt      *time.Time `db:"approved_at"`
	DecidedBy       *uuid.UUID `db:"decided_by"`
	RejectionReason *string    `db:"rejection_reason"`
	SupplierID      *uuid.UUID `db:"supplier_id"`
	ExpectedDate    *time.Time `db:"expected_date"`
	DeliveredAt     *time.Time `db:"delivered_at"`
	TakenAt         *time.Time `db:"taken_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (row requestRow) toDomain(lines []domain.ExceptionalLine) domain.ExceptionalRequest {
	if lines == nil {
		lines = []domain.ExceptionalLine{}
	}
	return domain.ExceptionalRequest{
		ID:              row.ID,
		RequesterID:     row.RequesterID,
		Status:          domain.ExceptionalStatus(row.Status),
		Lines:           lines,
		ApprovedAt:      row.ApprovedAt,
		DecidedBy:       row.DecidedBy,
		RejectionReason: row.RejectionReason,
		SupplierID:      row.SupplierID,
		ExpectedDate:    row.ExpectedDate,
		DeliveredAt:     row.DeliveredAt,
		TakenAt:         row.TakenAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

type lineRow struct {
	ID                   uuid.UUID `db:"id"`
	RequestID            uuid.UUID `db:"request_id"`
	ExceptionalProductID uuid.UUID `db:"exceptional_product_id"`
	ProductName          string    `db:"product_name"`
	Quantity             int       `db:"quantity"`
	OrderedQty           int       `db:"ordered_qty"`
}

type allocationRow struct {
	ID              uuid.UUID `db:"id"`
	LineID          uuid.UUID `db:"line_id"`
	PurchaseOrderID uuid.UUID `db:"purchase_order_id"`
	Quantity        int       `db:"quantity"`
	CreatedBy       uuid.UUID `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
}
