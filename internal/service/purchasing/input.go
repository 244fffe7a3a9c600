package purchasing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// LineInput is one line of a new purchase order.
type LineInput struct {
	Kind      domain.LineKind
	ProductID uuid.UUID
	Quantity  int
}

// CreateInput holds a new purchase order. SourceOrderID names a RETURNED
// order that this one reorders.
type CreateInput struct {
	SupplierID    uuid.UUID
	ExpectedDate  time.Time
	Lines         []LineInput
	SourceOrderID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	if i.SupplierID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "supplier_id", Message: "required"})
	}
	if i.ExpectedDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "expected_date", Message: "required"})
	}
	if i.SourceOrderID != nil && *i.SourceOrderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "source_order_id", Message: "must not be nil"})
	}
	if len(i.Lines) == 0 {
		errs = append(errs, domain.FieldError{Field: "lines", Message: "at least one line required"})
	}
	if len(i.Lines) > MaxLines {
		errs = append(errs, domain.FieldError{Field: "lines", Message: fmt.Sprintf("max %d lines", MaxLines)})
	}

	type key struct {
		kind domain.LineKind
		id   uuid.UUID
	}
	seen := make(map[key]bool, len(i.Lines))
	for idx, l := range i.Lines {
		field := fmt.Sprintf("lines[%d]", idx)
		if !l.Kind.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".kind", Message: "must be CATALOG or EXCEPTIONAL"})
		}
		if l.ProductID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: field + ".product_id", Message: "required"})
		} else if seen[key{l.Kind, l.ProductID}] {
			errs = append(errs, domain.FieldError{Field: field + ".product_id", Message: "duplicate product"})
		}
		seen[key{l.Kind, l.ProductID}] = true
		if l.Quantity < 1 {
			errs = append(errs, domain.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReceiveInput marks a validated order delivered.
type ReceiveInput struct {
	OrderID    uuid.UUID
	InvoiceRef *string
}

// Validate checks all fields and collects all errors.
func (i ReceiveInput) Validate() error {
	if i.OrderID == uuid.Nil {
		return domain.NewValidationError("order_id", "required")
	}
	if i.InvoiceRef != nil && strings.TrimSpace(*i.InvoiceRef) == "" {
		return domain.NewValidationError("invoice_ref", "must not be blank")
	}
	return nil
}

// ReasonInput carries the reason for a return or a cancellation.
type ReasonInput struct {
	OrderID uuid.UUID
	Reason  string
}

func (i ReasonInput) validate(required bool) error {
	var errs []domain.FieldError
	if i.OrderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "order_id", Message: "required"})
	}
	reason := strings.TrimSpace(i.Reason)
	if required && reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(reason) > MaxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: fmt.Sprintf("max %d characters", MaxReasonLength)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput filters the purchase order list.
type ListInput struct {
	Status     *domain.OrderStatus
	SupplierID *uuid.UUID
	CreatedBy  *uuid.UUID
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Limit < 0 || i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
