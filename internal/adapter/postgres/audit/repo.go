// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit entries; a table trigger
// rejects UPDATE and DELETE.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/domain"
)

var entryColumns = []string{
	"id", "actor_id", "action_type", "entity_type", "entity_id", "affected_product_ids", "description", "created_at",
}

// Repo provides audit trail persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit entry and returns the persisted domain.AuditEntry.
func (r *Repo) Create(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error) {
	var entityType pgtype.Text
	if entry.EntityType != nil {
		entityType = pgtype.Text{String: entry.EntityType.String(), Valid: true}
	}

	affected := entry.AffectedProductIDs
	if affected == nil {
		affected = []uuid.UUID{}
	}

	query, args, err := postgres.Builder().
		Insert("audit_entries").
		Columns(entryColumns...).
		Values(entry.ID, entry.ActorID, entry.ActionType.String(), entityType, uuidPtrToPgUUID(entry.EntityID),
			affected, entry.Description, entry.CreatedAt).
		Suffix("RETURNING " + strings.Join(entryColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("build insert audit entry: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, "audit_entry", entry.ID)
	}
	return row.toDomain(), nil
}

// Log creates an audit entry without returning it.
// Satisfies the auditLogger dependency of every service.
func (r *Repo) Log(ctx context.Context, entry domain.AuditEntry) error {
	_, err := r.Create(ctx, entry)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns audit entries matching the filter, newest first, and the
// total number of matches.
func (r *Repo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int, error) {
	where := squirrel.And{}
	if filter.ActorID != nil {
		where = append(where, squirrel.Eq{"actor_id": *filter.ActorID})
	}
	if filter.ActionType != nil {
		where = append(where, squirrel.Eq{"action_type": filter.ActionType.String()})
	}
	if filter.EntityID != nil {
		where = append(where, squirrel.Eq{"entity_id": *filter.EntityID})
	}
	if filter.ProductID != nil {
		where = append(where, squirrel.Expr("affected_product_ids @> ARRAY[?]::uuid[]", *filter.ProductID))
	}
	if filter.Since != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.Since})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder().
		Select("count(*)").
		From("audit_entries").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count audit entries: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit_entries: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(entryColumns...).
		From("audit_entries").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list audit entries: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list audit_entries: %w", err)
	}

	entries := make([]domain.AuditEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries, total, nil
}

// GetByEntity returns the history of one entity, newest first, limited to
// `limit` entries.
func (r *Repo) GetByEntity(ctx context.Context, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	entries, _, err := r.List(ctx, domain.AuditFilter{EntityID: &entityID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("get audit_entries by entity: %w", err)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type entryRow struct {
	ID                 uuid.UUID   `db:"id"`
	ActorID            uuid.UUID   `db:"actor_id"`
	ActionType         string      `db:"action_type"`
	EntityType         pgtype.Text `db:"entity_type"`
	EntityID           pgtype.UUID `db:"entity_id"`
	AffectedProductIDs []uuid.UUID `db:"affected_product_ids"`
	Description        string      `db:"description"`
	CreatedAt          time.Time   `db:"created_at"`
}

func (row entryRow) toDomain() domain.AuditEntry {
	entry := domain.AuditEntry{
		ID:                 row.ID,
		ActorID:            row.ActorID,
		ActionType:         domain.AuditAction(row.ActionType),
		AffectedProductIDs: row.AffectedProductIDs,
		Description:        row.Description,
		CreatedAt:          row.CreatedAt,
	}

	// entity_type / entity_id: nullable
	if row.EntityType.Valid {
		t := domain.EntityType(row.EntityType.String)
		entry.EntityType = &t
	}
	if row.EntityID.Valid {
		id := uuid.UUID(row.EntityID.Bytes)
		entry.EntityID = &id
	}
	if entry.AffectedProductIDs == nil {
		entry.AffectedProductIDs = []uuid.UUID{}
	}

	return entry
}

// uuidPtrToPgUUID converts a *uuid.UUID to pgtype.UUID (nil -> NULL).
func uuidPtrToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
