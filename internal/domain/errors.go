package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOverOrder         = errors.New("over order")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError reports an operation that is not legal from the entity's
// current status. The entity is left unchanged.
type TransitionError struct {
	Entity EntityType
	ID     uuid.UUID
	From   string
	Op     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot %s from status %s", strings.ToLower(string(e.Entity)), e.ID, e.Op, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError builds a TransitionError for the given entity and operation.
func NewTransitionError(entity EntityType, id uuid.UUID, from fmt.Stringer, op string) *TransitionError {
	return &TransitionError{Entity: entity, ID: id, From: from.String(), Op: op}
}

// Shortfall is one line that cannot be served from current stock.
type Shortfall struct {
	ProductID uuid.UUID `json:"productId"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
}

// InsufficientStockError carries the per-line shortfall so callers can
// correct quantities and resubmit.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortfalls) == 1 {
		s := e.Shortfalls[0]
		return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d", s.ProductID, s.Available, s.Requested)
	}
	return fmt.Sprintf("insufficient stock for %d products", len(e.Shortfalls))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// OverOrderError reports an exceptional line ordered beyond its requested quantity.
type OverOrderError struct {
	LineID    uuid.UUID
	Quantity  int
	Ordered   int
	Requested int
}

func (e *OverOrderError) Error() string {
	return fmt.Sprintf("line %s: ordering %d more would exceed quantity %d (already ordered %d)",
		e.LineID, e.Requested, e.Quantity, e.Ordered)
}

func (e *OverOrderError) Unwrap() error { return ErrOverOrder }

// OrderLineExhaustedError reports allocations beyond what a purchase order
// line actually carries.
type OrderLineExhaustedError struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Allocated int
	Requested int
}

func (e *OrderLineExhaustedError) Error() string {
	return fmt.Sprintf("order %s product %s: allocating %d more would exceed line quantity %d (already allocated %d)",
		e.OrderID, e.ProductID, e.Requested, e.Quantity, e.Allocated)
}

func (e *OrderLineExhaustedError) Unwrap() error { return ErrOverOrder }

// NotificationWarning is a non-fatal notification delivery failure. It never
// rolls back the transition that produced the notification.
type NotificationWarning struct {
	Recipient uuid.UUID
	Kind      NotificationKind
	Err       error
}

func (w *NotificationWarning) Error() string {
	return fmt.Sprintf("notification %s to %s not delivered: %v", w.Kind, w.Recipient, w.Err)
}

func (w *NotificationWarning) Unwrap() error { return w.Err }
