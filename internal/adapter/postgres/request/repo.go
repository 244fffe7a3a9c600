// Package request implements the stocked-item request repository using PostgreSQL.
package request

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
	"id", "requester_id", "status", "decided_by", "rejection_reason", "decided_at",
	"taken_by", "taken_at", "created_at", "updated_at",
}

// Repo provides request persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new request repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a request with its lines.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns a request with its lines and locks the request row
// until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Request, error) {
	b := postgres.Builder().
		Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var row requestRow
	if err := pgxscan.Get(ctx, q, &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "request", id)
	}

	lines, err := r.linesByRequest(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	req := row.toDomain(lines[id])
	return &req, nil
}

// List returns a page of requests, newest first, together with the total
// number of requests matching the filter.
func (r *Repo) List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, int, error) {
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
		From("requests").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count requests: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(requestColumns...).
		From("requests").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list requests: %w", err)
	}

	var rows []requestRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.linesByRequest(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Request, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain(lines[row.ID])
	}
	return out, total, nil
}

func (r *Repo) linesByRequest(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.RequestLine, error) {
	out := make(map[uuid.UUID][]domain.RequestLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := postgres.Builder().
		Select("request_id", "product_id", "requested_qty", "approved_qty").
		From("request_lines").
		Where("request_id = ANY(?)", ids).
		OrderBy("request_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build request lines: %w", err)
	}

	var rows []lineRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select request_lines: %w", err)
	}

	for _, row := range rows {
		out[row.RequestID] = append(out[row.RequestID], domain.RequestLine{
			ProductID:    row.ProductID,
			RequestedQty: row.RequestedQty,
			ApprovedQty:  row.ApprovedQty,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a request and its lines. Line order is preserved.
func (r *Repo) Create(ctx context.Context, req *domain.Request) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder().
		Insert("requests").
		Columns("id", "requester_id", "status", "created_at", "updated_at").
		Values(req.ID, req.RequesterID, req.Status.String(), req.CreatedAt, req.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert request: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "request", req.ID)
	}

	lines := postgres.Builder().
		Insert("request_lines").
		Columns("request_id", "position", "product_id", "requested_qty")
	for i, l := range req.Lines {
		lines = lines.Values(req.ID, i, l.ProductID, l.RequestedQty)
	}

	query, args, err = lines.ToSql()
	if err != nil {
		return fmt.Errorf("build insert request lines: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "request", req.ID)
	}
	return nil
}

// Update writes the decision and fulfillment fields of a request and the
// approved quantity of each line.
func (r *Repo) Update(ctx context.Context, req *domain.Request) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder().
		Update("requests").
		Set("status", req.Status.String()).
		Set("decided_by", req.DecidedBy).
		Set("rejection_reason", req.RejectionReason).
		Set("decided_at", req.DecidedAt).
		Set("taken_by", req.TakenBy).
		Set("taken_at", req.TakenAt).
		Set("updated_at", req.UpdatedAt).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "request", req.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", req.ID, domain.ErrNotFound)
	}

	for _, l := range req.Lines {
		if l.ApprovedQty == nil {
			continue
		}
		query, args, err := postgres.Builder().
			Update("request_lines").
			Set("approved_qty", *l.ApprovedQty).
			Where(squirrel.Eq{"request_id": req.ID, "product_id": l.ProductID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update request line: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "request", req.ID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type requestRow struct {
	ID              uuid.UUID  `db:"id"`
	RequesterID     uuid.UUID  `db:"requester_id"`
	Status          string     `db:"status"`
	DecidedBy       *uuid.UUID `db:"decided_by"`
	RejectionReason *string    `db:"rejection_reason"`
	DecidedAt       *time.Time `db:"decided_at"`
	TakenBy         *uuid.UUID `db:"taken_by"`
	TakenAt         *time.Time `db:"taken_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (row requestRow) toDomain(lines []domain.RequestLine) domain.Request {
	if lines == nil {
		lines = []domain.RequestLine{}
	}
	return domain.Request{
		ID:              row.ID,
		RequesterID:     row.RequesterID,
		Status:          domain.RequestStatus(row.Status),
		Lines:           lines,
		DecidedBy:       row.DecidedBy,
		RejectionReason: row.RejectionReason,
		DecidedAt:       row.DecidedAt,
		TakenBy:         row.TakenBy,
		TakenAt:         row.TakenAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

type lineRow struct {
	RequestID    uuid.UUID `db:"request_id"`
	ProductID    uuid.UUID `db:"product_id"`
	RequestedQty int       `db:"requested_qty"`
	ApprovedQty  *int      `db:"approved_qty"`
}
