package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// LineInput is one requested product.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// SubmitInput holds the lines of a new request.
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

	seen := make(map[uuid.UUID]bool, len(i.Lines))
	for idx, l := range i.Lines {
		field := fmt.Sprintf("lines[%d]", idx)
		if l.ProductID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: field + ".product_id", Message: "required"})
		} else if seen[l.ProductID] {
			errs = append(errs, domain.FieldError{Field: field + ".product_id", Message: "duplicate product"})
		}
		seen[l.ProductID] = true
		if l.Quantity < 1 {
			errs = append(errs, domain.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ApproveLine is the approved quantity for one request line.
type ApproveLine struct {
	ProductID   uuid.UUID
	ApprovedQty int
}

// ApproveInput holds a manager's approval.
type ApproveInput struct {
	RequestID uuid.UUID
	Lines     []ApproveLine
}

// Validate checks the fields that do not depend on the stored request.
func (i ApproveInput) Validate() error {
	var errs []domain.FieldError
	if i.RequestID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if len(i.Lines) == 0 {
		errs = append(errs, domain.FieldError{Field: "lines", Message: "at least one line required"})
	}
	for idx, l := range i.Lines {
		if l.ProductID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("lines[%d].product_id", idx), Message: "required"})
		}
		if l.ApprovedQty < 1 {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("lines[%d].approved_qty", idx), Message: "must be at least 1 (reject the request instead)"})
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
	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(reason) > 1000 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput filters the request list.
type ListInput struct {
	Status      *domain.RequestStatus
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
