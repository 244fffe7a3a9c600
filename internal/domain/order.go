package domain

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	ID            uuid.UUID
	SupplierID    uuid.UUID
	Status        OrderStatus
	Lines         []OrderLine
	ExpectedDate  time.Time
	CreatedBy     uuid.UUID
	ValidatedBy   *uuid.UUID
	ValidatedAt   *time.Time
	DeliveredAt   *time.Time
	ReturnReason  *string
	CancelReason  *string
	InvoiceRef    *string
	SourceOrderID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderLine is one line of a purchase order. Lines are fixed at creation;
// only Reordered is set later, when a reorder of a returned order is raised.
type OrderLine struct {
	ID        uuid.UUID
	Kind      LineKind
	ProductID uuid.UUID
	Quantity  int
	Reordered bool
}

// CatalogStockLines returns the catalog lines as ledger lines.
func (o PurchaseOrder) CatalogStockLines() []StockLine {
	out := make([]StockLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		if l.Kind == LineKindCatalog {
			out = append(out, StockLine{ProductID: l.ProductID, Quantity: l.Quantity})
		}
	}
	return out
}

// HasLine reports whether the order carries a line for the given product.
func (o PurchaseOrder) HasLine(kind LineKind, productID uuid.UUID) bool {
	for _, l := range o.Lines {
		if l.Kind == kind && l.ProductID == productID {
			return true
		}
	}
	return false
}

// LineQuantity sums the quantity ordered for a product across lines of kind.
func (o PurchaseOrder) LineQuantity(kind LineKind, productID uuid.UUID) int {
	var total int
	for _, l := range o.Lines {
		if l.Kind == kind && l.ProductID == productID {
			total += l.Quantity
		}
	}
	return total
}

// ProductIDs returns the product ids of all lines.
func (o PurchaseOrder) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Lines))
	for i, l := range o.Lines {
		ids[i] = l.ProductID
	}
	return ids
}

// OrderFilter narrows purchase order list queries.
type OrderFilter struct {
	Status     *OrderStatus
	SupplierID *uuid.UUID
	CreatedBy  *uuid.UUID
	Limit      int
	Offset     int
}
