package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedStaff creates an active staff member with the given role.
func SeedStaff(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.Staff {
	t.Helper()

	suffix := uniqueSuffix()
	s := domain.Staff{
		ID:        uuid.New(),
		Name:      "Staff " + suffix,
		Email:     "staff-" + suffix + "@example.com",
		Role:      role,
		Active:    true,
		CreatedAt: now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO staff (id, name, email, role, active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Email, string(s.Role), s.Active, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStaff: %v", err)
	}
	return s
}

// SeedProduct creates a catalog product with the given stock quantities.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, onHand, threshold int) domain.Product {
	t.Helper()

	ts := now()
	p := domain.Product{
		ID:               uuid.New(),
		Name:             "Product " + uniqueSuffix(),
		OnHand:           onHand,
		MinimumThreshold: threshold,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, on_hand, minimum_threshold, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.OnHand, p.MinimumThreshold, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProduct: %v", err)
	}
	return p
}

// SeedSupplier creates a supplier with a zero score.
func SeedSupplier(t *testing.T, pool *pgxpool.Pool) domain.Supplier {
	t.Helper()

	s := domain.Supplier{
		ID:        uuid.New(),
		Name:      "Supplier " + uniqueSuffix(),
		CreatedAt: now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO suppliers (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSupplier: %v", err)
	}
	return s
}

// SeedExceptionalProduct creates a non-catalog product with a unique name.
func SeedExceptionalProduct(t *testing.T, pool *pgxpool.Pool) domain.ExceptionalProduct {
	t.Helper()

	p := domain.ExceptionalProduct{
		ID:        uuid.New(),
		Name:      "Special " + uniqueSuffix(),
		CreatedAt: now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO exceptional_products (id, name, name_normalized, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, domain.NormalizeName(p.Name), p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExceptionalProduct: %v", err)
	}
	return p
}

// OnHand reads the current on-hand quantity of a product.
func OnHand(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID) int {
	t.Helper()

	var onHand int
	err := pool.QueryRow(context.Background(),
		`SELECT on_hand FROM products WHERE id = $1`, productID,
	).Scan(&onHand)
	if err != nil {
		t.Fatalf("testhelper: OnHand: %v", err)
	}
	return onHand
}

// CountAudit counts audit entries of the given action for an entity.
func CountAudit(t *testing.T, pool *pgxpool.Pool, action domain.AuditAction, entityID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM audit_entries WHERE action_type = $1 AND entity_id = $2`,
		string(action), entityID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountAudit: %v", err)
	}
	return n
}

// SeedClosedOrder creates a purchase order in a closed status with one
// catalog line. deliveredAt is only stored for DELIVERED orders.
func SeedClosedOrder(t *testing.T, pool *pgxpool.Pool, supplierID uuid.UUID, status domain.OrderStatus, expected, deliveredAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	var delivered *time.Time
	if status == domain.OrderStatusDelivered {
		delivered = &deliveredAt
	}
	var reason *string
	if status == domain.OrderStatusReturned {
		r := "damaged"
		reason = &r
	}

	ctx := context.Background()
	_, err := pool.Exec(ctx,
		`INSERT INTO purchase_orders (id, supplier_id, status, expected_date, created_by, delivered_at, return_reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, supplierID, string(status), expected, uuid.New(), delivered, reason,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedClosedOrder: %v", err)
	}
	return id
}
