package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is an entry of the supplier directory.
type Supplier struct {
	ID        uuid.UUID
	Name      string
	Contact   *string
	Email     *string
	Phone     *string
	Score     decimal.Decimal
	ScoredAt  *time.Time
	CreatedAt time.Time
}

// SupplierHistory summarises a supplier's purchase order outcomes.
type SupplierHistory struct {
	SupplierID uuid.UUID
	Delivered  int
	OnTime     int
	Returned   int
	Cancelled  int
}

// Total returns the number of closed orders in the history.
func (h SupplierHistory) Total() int { return h.Delivered + h.Returned + h.Cancelled }

// Staff is a member of staff mirrored from the identity provider.
type Staff struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      UserRole
	Active    bool
	CreatedAt time.Time
}
