package exceptional

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// LineInput names an exceptional product either by id or by name.
type LineInput struct {
	ExceptionalProductID *uuid.UUID
	Name                 string
	Brand                *string
	Quantity             int
}

// SubmitInput holds the lines of a new exceptional request.
type SubmitInput struct {
	Lines []LineInput
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError
	if len(i.Lines) == 0 {
		errs = append(errs, domain.FieldError{Field: "lines", Message: "at least one line required"})
	}
	if len(i.Lines) > MaxLines {
		errs = append(errs, domain.FieldError{Field: "lines", Message: fmt.Sprintf("max %d lines", MaxLines)})
	}
	for idx, l := range i.Lines {
		field := fmt.Sprintf("lines[%d]", idx)
		name := strings.TrimSpace(l.Name)
		switch {
		case l.ExceptionalProductID != nil && *l.ExceptionalProductID == uuid.Nil:
			errs = append(errs, domain.FieldError{Field: field + ".exceptional_product_id", Message: "must not be nil"})
		case l.ExceptionalProductID == nil && name == "":
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: "name or exceptional_product_id required"})
		case l.ExceptionalProductID != nil && name != "":
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: "give either name or exceptional_product_id"})
		}
		if len(name) > MaxNameLength {
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: fmt.Sprintf("max %d characters", MaxNameLength)})
		}
		if l.Quantity < 1 {
			errs = append(errs, domain.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RejectInput holds a manager's rejection.
type RejectInput struct {
	RequestID uuid.UUID
	Reason    string
}

// Validate checks all fields and collects all errors.
func (i RejectInput) Validate() error {
	var errs []domain.FieldError
	if i.RequestID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if strings.TrimSpace(i.Reason) == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// OrderLine is a quantity of one request line placed on a purchase order.
type OrderLine struct {
	LineID     uuid.UUID
	OrderedQty int
}

// RecordOrderInput records that some lines were ordered on a purchase order.
type RecordOrderInput struct {
	RequestID       uuid.UUID
	PurchaseOrderID uuid.UUID
	Lines           []OrderLine
}

// Validate checks the fields that do not depend on the stored request.
func (i RecordOrderInput) Validate() error {
	var errs []domain.FieldError
	if i.RequestID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if i.PurchaseOrderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "purchase_order_id", Message: "required"})
	}
	if len(i.Lines) == 0 {
		errs = append(errs, domain.FieldError{Field: "lines", Message: "at least one line required"})
	}
	seen := make(map[uuid.UUID]bool, len(i.Lines))
	for idx, l := range i.Lines {
		field := fmt.Sprintf("lines[%d]", idx)
		if l.LineID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: field + ".line_id", Message: "required"})
		} else if seen[l.LineID] {
			errs = append(errs, domain.FieldError{Field: field + ".line_id", Message: "duplicate line"})
		}
		seen[l.LineID] = true
		if l.OrderedQty < 1 {
			errs = append(errs, domain.FieldError{Field: field + ".ordered_qty", Message: "must be at least 1"})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput filters the exceptional request list.
type ListInput struct {
	Status      *domain.ExceptionalStatus
	RequesterID *uuid.UUID
	Limit       int
	Offset      int
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
