package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExceptionalProduct is a non-catalog item that can be requested.
type ExceptionalProduct struct {
	ID        uuid.UUID
	Name      string
	Brand     *string
	CreatedAt time.Time
}

// ExceptionalRequest asks for items that are not carried in inventory.
type ExceptionalRequest struct {
	ID              uuid.UUID
	RequesterID     uuid.UUID
	Status          ExceptionalStatus
	Lines           []ExceptionalLine
	ApprovedAt      *time.Time
	DecidedBy       *uuid.UUID
	RejectionReason *string
	SupplierID      *uuid.UUID
	ExpectedDate    *time.Time
	DeliveredAt     *time.Time
	TakenAt         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExceptionalLine tracks ordering progress for one exceptional product.
// OrderedQty only grows and never exceeds Quantity.
type ExceptionalLine struct {
	ID                   uuid.UUID
	ExceptionalProductID uuid.UUID
	ProductName          string
	Quantity             int
	OrderedQty           int
}

// Remaining returns the quantity still to be ordered.
func (l ExceptionalLine) Remaining() int { return l.Quantity - l.OrderedQty }

// FullyOrdered reports whether the line has been ordered in full.
func (l ExceptionalLine) FullyOrdered() bool { return l.OrderedQty >= l.Quantity }

// FullyOrdered reports whether every line has been ordered in full.
func (r ExceptionalRequest) FullyOrdered() bool {
	if len(r.Lines) == 0 {
		return false
	}
	for _, l := range r.Lines {
		if !l.FullyOrdered() {
			return false
		}
	}
	return true
}

// Line returns the line with the given id.
func (r ExceptionalRequest) Line(id uuid.UUID) (ExceptionalLine, bool) {
	for _, l := range r.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return ExceptionalLine{}, false
}

// ProductIDs returns the exceptional product ids of all lines.
func (r ExceptionalRequest) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Lines))
	for i, l := range r.Lines {
		ids[i] = l.ExceptionalProductID
	}
	return ids
}

// ExceptionalAllocation records a quantity of a line placed on a purchase order.
type ExceptionalAllocation struct {
	ID              uuid.UUID
	LineID          uuid.UUID
	PurchaseOrderID uuid.UUID
	Quantity        int
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
}

// ExceptionalFilter narrows exceptional request list queries.
type ExceptionalFilter struct {
	Status      *ExceptionalStatus
	RequesterID *uuid.UUID
	Limit       int
	Offset      int
}
