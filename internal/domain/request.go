package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request is a requester's ask for stocked catalog items.
type Request struct {
	ID              uuid.UUID
	RequesterID     uuid.UUID
	Status          RequestStatus
	Lines           []RequestLine
	DecidedBy       *uuid.UUID
	RejectionReason *string
	DecidedAt       *time.Time
	TakenBy         *uuid.UUID
	TakenAt         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RequestLine is one product line of a request. ApprovedQty is nil until
// the request is approved.
type RequestLine struct {
	ProductID    uuid.UUID
	RequestedQty int
	ApprovedQty  *int
}

// PartiallyApproved reports whether any line was approved below its
// requested quantity.
func (r Request) PartiallyApproved() bool {
	for _, l := range r.Lines {
		if l.ApprovedQty != nil && *l.ApprovedQty < l.RequestedQty {
			return true
		}
	}
	return false
}

// ProductIDs returns the product ids of all lines in line order.
func (r Request) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Lines))
	for i, l := range r.Lines {
		ids[i] = l.ProductID
	}
	return ids
}

// ApprovedStockLines returns the approved quantities as ledger lines.
// Lines without an approved quantity are skipped.
func (r Request) ApprovedStockLines() []StockLine {
	out := make([]StockLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		if l.ApprovedQty == nil {
			continue
		}
		out = append(out, StockLine{ProductID: l.ProductID, Quantity: *l.ApprovedQty})
	}
	return out
}

// RequestFilter narrows request list queries.
type RequestFilter struct {
	Status      *RequestStatus
	RequesterID *uuid.UUID
	Limit       int
	Offset      int
}
