package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatsWindow bounds dashboard aggregates to [From, To).
type StatsWindow struct {
	From time.Time
	To   time.Time
}

// StatsTotals are headline counts over the whole dataset.
type StatsTotals struct {
	Orders           int
	Staff            int
	Suppliers        int
	ApprovedRequests int
}

// MonthlyRequests counts requests submitted in a calendar month.
type MonthlyRequests struct {
	Month       time.Time
	Requests    int
	Exceptional int
}

// ProductDemand is how often and how much a catalog product was requested.
type ProductDemand struct {
	ProductID uuid.UUID
	Name      string
	Requests  int
	Quantity  int
}

// SupplierOrders summarizes the purchase orders placed with a supplier.
type SupplierOrders struct {
	SupplierID uuid.UUID
	Name       string
	Orders     int
	Delivered  int
	Returned   int
	Cancelled  int
}

// Dashboard is the management overview.
type Dashboard struct {
	Window            StatsWindow
	Totals            StatsTotals
	RequestsPerMonth  []MonthlyRequests
	TopProducts       []ProductDemand
	OrdersPerSupplier []SupplierOrders
}
