// Package stock implements the product stock repository using PostgreSQL.
// on_hand is only written through SetOnHand, always under a row lock taken
// by LockProducts in the same transaction.
package stock

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/domain"
)

var productColumns = []string{
	"id", "category_id", "name", "brand", "on_hand", "minimum_threshold", "created_at", "updated_at",
}

// Repo provides product stock persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new stock repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetProduct returns a product by primary key.
func (r *Repo) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query, args, err := postgres.Builder().
		Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}

	var row productRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "product", id)
	}

	p := row.toDomain()
	return &p, nil
}

// GetProducts returns the products with the given ids without locking.
// Missing ids are simply absent from the result.
func (r *Repo) GetProducts(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	query, args, err := postgres.Builder().
		Select(productColumns...).
		From("products").
		Where("id = ANY(?)", ids).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get products: %w", err)
	}

	return r.selectProducts(ctx, query, args)
}

// LockProducts reads the given products with SELECT ... FOR UPDATE. Rows
// are locked in id order so concurrent ledger calls cannot deadlock.
// Must be called inside a transaction.
func (r *Repo) LockProducts(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	query, args, err := postgres.Builder().
		Select(productColumns...).
		From("products").
		Where("id = ANY(?)", sorted).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock products: %w", err)
	}

	return r.selectProducts(ctx, query, args)
}

// ListAlerts returns every product whose status is LOW or OUT, emptiest first.
func (r *Repo) ListAlerts(ctx context.Context) ([]domain.Product, error) {
	query, args, err := postgres.Builder().
		Select(productColumns...).
		From("products").
		Where("on_hand <= minimum_threshold").
		OrderBy("on_hand ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list alerts: %w", err)
	}

	return r.selectProducts(ctx, query, args)
}

// ListMovements returns the movement register of a product, newest first.
func (r *Repo) ListMovements(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error) {
	query, args, err := postgres.Builder().
		Select("id", "product_id", "delta", "balance_after", "reason", "actor_id", "ref_type", "ref_id", "created_at").
		From("stock_movements").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movements: %w", err)
	}

	var rows []movementRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stock_movements: %w", err)
	}

	out := make([]domain.StockMovement, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *Repo) selectProducts(ctx context.Context, query string, args []any) ([]domain.Product, error) {
	var rows []productRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	out := make([]domain.Product, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// SetOnHand writes a new on-hand quantity. The products CHECK constraint
// rejects negative values as domain.ErrValidation.
func (r *Repo) SetOnHand(ctx context.Context, id uuid.UUID, onHand int) error {
	query, args, err := postgres.Builder().
		Update("products").
		Set("on_hand", onHand).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set on_hand: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "product", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// InsertMovements appends rows to the stock movement register.
func (r *Repo) InsertMovements(ctx context.Context, movements []domain.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	insert := postgres.Builder().
		Insert("stock_movements").
		Columns("id", "product_id", "delta", "balance_after", "reason", "actor_id", "ref_type", "ref_id", "created_at")

	for _, m := range movements {
		var refType *string
		if m.RefType != nil {
			s := string(*m.RefType)
			refType = &s
		}
		insert = insert.Values(m.ID, m.ProductID, m.Delta, m.BalanceAfter, m.Reason, m.ActorID, refType, m.RefID, m.CreatedAt)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert movements: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "stock_movement", movements[0].ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type productRow struct {
	ID               uuid.UUID  `db:"id"`
	CategoryID       *uuid.UUID `db:"category_id"`
	Name             string     `db:"name"`
	Brand            *string    `db:"brand"`
	OnHand           int        `db:"on_hand"`
	MinimumThreshold int        `db:"minimum_threshold"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (row productRow) toDomain() domain.Product {
	return domain.Product{
		ID:               row.ID,
		CategoryID:       row.CategoryID,
		Name:             row.Name,
		Brand:            row.Brand,
		OnHand:           row.OnHand,
		MinimumThreshold: row.MinimumThreshold,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

type movementRow struct {
	ID           uuid.UUID  `db:"id"`
	ProductID    uuid.UUID  `db:"product_id"`
	Delta        int        `db:"delta"`
	BalanceAfter int        `db:"balance_after"`
	Reason       string     `db:"reason"`
	ActorID      uuid.UUID  `db:"actor_id"`
	RefType      *string    `db:"ref_type"`
	RefID        *uuid.UUID `db:"ref_id"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (row movementRow) toDomain() domain.StockMovement {
	m := domain.StockMovement{
		ID:           row.ID,
		ProductID:    row.ProductID,
		Delta:        row.Delta,
		BalanceAfter: row.BalanceAfter,
		Reason:       row.Reason,
		ActorID:      row.ActorID,
		RefID:        row.RefID,
		CreatedAt:    row.CreatedAt,
	}
	if row.RefType != nil {
		t := domain.EntityType(*row.RefType)
		m.RefType = &t
	}
	return m
}
