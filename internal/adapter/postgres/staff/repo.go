// Package staff implements the staff directory using PostgreSQL. Rows are
// mirrored from the identity provider; only roles are changed locally, by
// operators bootstrapping the first administrators.
package staff

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/domain"
)

// Repo provides staff lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new staff repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a staff member by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	query, args, err := postgres.Builder().
		Select("id", "name", "email", "role", "active", "created_at").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get staff: %w", err)
	}

	var row staffRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "staff", id)
	}

	return row.toDomain(), nil
}

// ListIDsByRole returns the ids of active staff holding any of the roles.
func (r *Repo) ListIDsByRole(ctx context.Context, roles []domain.UserRole) ([]uuid.UUID, error) {
	if len(roles) == 0 {
		return []uuid.UUID{}, nil
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}

	query, args, err := postgres.Builder().
		Select("id").
		From("staff").
		Where(squirrel.Eq{"role": names, "active": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list staff by role: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list staff by role: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// SetRoleByEmail changes the role of the active staff member with email and
// returns the updated row. Returns domain.ErrNotFound when nobody matches.
func (r *Repo) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (*domain.Staff, error) {
	query, args, err := postgres.Builder().
		Update("staff").
		Set("role", role.String()).
		Where(squirrel.Eq{"lower(email)": strings.ToLower(strings.TrimSpace(email)), "active": true}).
		Suffix("RETURNING id, name, email, role, active, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set staff role: %w", err)
	}

	var row staffRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("staff %q: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set staff role: %w", err)
	}
	return row.toDomain(), nil
}

type staffRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func (row staffRow) toDomain() *domain.Staff {
	return &domain.Staff{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Role:      domain.UserRole(row.Role),
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}
}
