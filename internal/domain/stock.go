package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups catalog products. Read-only reference data.
type Category struct {
	ID   uuid.UUID
	Name string
}

// Product is a catalog item carried in regular inventory.
// OnHand is only ever modified by the stock ledger.
type Product struct {
	ID               uuid.UUID
	CategoryID       *uuid.UUID
	Name             string
	Brand            *string
	OnHand           int
	MinimumThreshold int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Status derives the product's stock status from its current quantities.
func (p Product) Status() StockStatus {
	return ComputeStockStatus(p.OnHand, p.MinimumThreshold)
}

// StockLine is a product/quantity pair passed to the ledger.
type StockLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// MergeStockLines sums quantities of lines that share a product id. The
// result keeps first-occurrence order.
func MergeStockLines(lines []StockLine) []StockLine {
	idx := make(map[uuid.UUID]int, len(lines))
	out := make([]StockLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := idx[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

// StockChange is the per-product outcome of a ledger mutation.
type StockChange struct {
	ProductID uuid.UUID   `json:"productId"`
	Previous  int         `json:"previous"`
	Current   int         `json:"current"`
	Threshold int         `json:"threshold"`
	Status    StockStatus `json:"status"`
}

// Availability is the result of a pure availability check.
type Availability struct {
	Insufficient []Shortfall
}

// OK reports whether every line can be served.
func (a Availability) OK() bool { return len(a.Insufficient) == 0 }

// Err returns an InsufficientStockError for the shortfalls, or nil.
func (a Availability) Err() error {
	if a.OK() {
		return nil
	}
	return &InsufficientStockError{Shortfalls: a.Insufficient}
}

// StockMovementRef points at the entity that caused a stock movement.
type StockMovementRef struct {
	Type EntityType
	ID   uuid.UUID
}

// StockMutation is one atomic ledger call: every line applies or none does.
type StockMutation struct {
	Lines   []StockLine
	ActorID uuid.UUID
	Reason  string
	Ref     *StockMovementRef
}

// NeedsAlert reports whether any change left a product LOW or OUT.
func NeedsAlert(changes []StockChange) bool {
	for _, c := range changes {
		if c.Status.NeedsAlert() {
			return true
		}
	}
	return false
}

// StockMovement is one row of the stock movement register.
type StockMovement struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	Delta        int
	BalanceAfter int
	Reason       string
	ActorID      uuid.UUID
	RefType      *EntityType
	RefID        *uuid.UUID
	CreatedAt    time.Time
}
