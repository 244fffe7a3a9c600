package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Shared
// ---------------------------------------------------------------------------

type warningResponse struct {
	Recipient uuid.UUID `json:"recipient"`
	Kind      string    `json:"kind"`
	Error     string    `json:"error"`
}

func toWarnings(ws []domain.NotificationWarning) []warningResponse {
	out := make([]warningResponse, len(ws))
	for i, w := range ws {
		out[i] = warningResponse{Recipient: w.Recipient, Kind: w.Kind.String(), Error: w.Err.Error()}
	}
	return out
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func mapSlice[S, T any](in []S, f func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type requestLineResponse struct {
	ProductID    uuid.UUID `json:"productId"`
	RequestedQty int       `json:"requestedQty"`
	ApprovedQty  *int      `json:"approvedQty"`
}

type requestResponse struct {
	ID                uuid.UUID             `json:"id"`
	RequesterID       uuid.UUID             `json:"requesterId"`
	Status            string                `json:"status"`
	Lines             []requestLineResponse `json:"lines"`
	PartiallyApproved bool                  `json:"partiallyApproved"`
	DecidedBy         *uuid.UUID            `json:"decidedBy,omitempty"`
	RejectionReason   *string               `json:"rejectionReason,omitempty"`
	DecidedAt         *time.Time            `json:"decidedAt,omitempty"`
	TakenBy           *uuid.UUID            `json:"takenBy,omitempty"`
	TakenAt           *time.Time            `json:"takenAt,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

func toRequest(r domain.Request) requestResponse {
	return requestResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Status:      r.Status.String(),
		Lines: mapSlice(r.Lines, func(l domain.RequestLine) requestLineResponse {
			return requestLineResponse{ProductID: l.ProductID, RequestedQty: l.RequestedQty, ApprovedQty: l.ApprovedQty}
		}),
		PartiallyApproved: r.PartiallyApproved(),
		DecidedBy:         r.DecidedBy,
		RejectionReason:   r.RejectionReason,
		DecidedAt:         r.DecidedAt,
		TakenBy:           r.TakenBy,
		TakenAt:           r.TakenAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type requestResult struct {
	Request  requestResponse      `json:"request"`
	Changes  []domain.StockChange `json:"changes,omitempty"`
	Warnings []warningResponse    `json:"warnings,omitempty"`
}

// ---------------------------------------------------------------------------
// Exceptional requests
// ---------------------------------------------------------------------------

type exceptionalLineResponse struct {
	ID                   uuid.UUID `json:"id"`
	ExceptionalProductID uuid.UUID `json:"exceptionalProductId"`
	ProductName          string    `json:"productName"`
	Quantity             int       `json:"quantity"`
	OrderedQty           int       `json:"orderedQty"`
}

type exceptionalResponse struct {
	ID              uuid.UUID                 `json:"id"`
	RequesterID     uuid.UUID                 `json:"requesterId"`
	Status          string                    `json:"status"`
	Lines           []exceptionalLineResponse `json:"lines"`
	ApprovedAt      *time.Time                `json:"approvedAt,omitempty"`
	DecidedBy       *uuid.UUID                `json:"decidedBy,omitempty"`
	RejectionReason *string                   `json:"rejectionReason,omitempty"`
	SupplierID      *uuid.UUID                `json:"supplierId,omitempty"`
	ExpectedDate    *time.Time                `json:"expectedDate,omitempty"`
	DeliveredAt     *time.Time                `json:"deliveredAt,omitempty"`
	TakenAt         *time.Time                `json:"takenAt,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

func toExceptional(r domain.ExceptionalRequest) exceptionalResponse {
	return exceptionalResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Status:      r.Status.String(),
		Lines: mapSlice(r.Lines, func(l domain.ExceptionalLine) exceptionalLineResponse {
			return exceptionalLineResponse{
				ID:                   l.ID,
				ExceptionalProductID: l.ExceptionalProductID,
				ProductName:          l.ProductName,
				Quantity:             l.Quantity,
				OrderedQty:           l.OrderedQty,
			}
		}),
		ApprovedAt:      r.ApprovedAt,
		DecidedBy:       r.DecidedBy,
		RejectionReason: r.RejectionReason,
		SupplierID:      r.SupplierID,
		ExpectedDate:    r.ExpectedDate,
		DeliveredAt:     r.DeliveredAt,
		TakenAt:         r.TakenAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type exceptionalResult struct {
	Request  exceptionalResponse `json:"request"`
	Warnings []warningResponse   `json:"warnings,omitempty"`
}

type exceptionalProductResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Brand *string   `json:"brand,omitempty"`
}

func toExceptionalProduct(p domain.ExceptionalProduct) exceptionalProductResponse {
	return exceptionalProductResponse{ID: p.ID, Name: p.Name, Brand: p.Brand}
}

type allocationResponse struct {
	ID              uuid.UUID `json:"id"`
	LineID          uuid.UUID `json:"lineId"`
	PurchaseOrderID uuid.UUID `json:"purchaseOrderId"`
	Quantity        int       `json:"quantity"`
	CreatedBy       uuid.UUID `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toAllocation(a domain.ExceptionalAllocation) allocationResponse {
	return allocationResponse{
		ID:              a.ID,
		LineID:          a.LineID,
		PurchaseOrderID: a.PurchaseOrderID,
		Quantity:        a.Quantity,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Purchase orders
// ---------------------------------------------------------------------------

type orderLineResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Reordered bool      `json:"reordered"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	SupplierID    uuid.UUID           `json:"supplierId"`
	Status        string              `json:"status"`
	Lines         []orderLineResponse `json:"lines"`
	ExpectedDate  time.Time           `json:"expectedDate"`
	CreatedBy     uuid.UUID           `json:"createdBy"`
	ValidatedBy   *uuid.UUID          `json:"validatedBy,omitempty"`
	ValidatedAt   *time.Time          `json:"validatedAt,omitempty"`
	DeliveredAt   *time.Time          `json:"deliveredAt,omitempty"`
	ReturnReason  *string             `json:"returnReason,omitempty"`
	CancelReason  *string             `json:"cancelReason,omitempty"`
	InvoiceRef    *string             `json:"invoiceRef,omitempty"`
	SourceOrderID *uuid.UUID          `json:"sourceOrderId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func toOrder(o domain.PurchaseOrder) orderResponse {
	return orderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		Status:     o.Status.String(),
		Lines: mapSlice(o.Lines, func(l domain.OrderLine) orderLineResponse {
			return orderLineResponse{ID: l.ID, Kind: l.Kind.String(), ProductID: l.ProductID, Quantity: l.Quantity, Reordered: l.Reordered}
		}),
		ExpectedDate:  o.ExpectedDate,
		CreatedBy:     o.CreatedBy,
		ValidatedBy:   o.ValidatedBy,
		ValidatedAt:   o.ValidatedAt,
		DeliveredAt:   o.DeliveredAt,
		ReturnReason:  o.ReturnReason,
		CancelReason:  o.CancelReason,
		InvoiceRef:    o.InvoiceRef,
		SourceOrderID: o.SourceOrderID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type orderResult struct {
	Order    orderResponse        `json:"order"`
	Changes  []domain.StockChange `json:"changes,omitempty"`
	Warnings []warningResponse    `json:"warnings,omitempty"`
}

// ---------------------------------------------------------------------------
// Stock
// ---------------------------------------------------------------------------

type stockResponse struct {
	ProductID        uuid.UUID  `json:"productId"`
	Name             string     `json:"name"`
	Brand            *string    `json:"brand,omitempty"`
	CategoryID       *uuid.UUID `json:"categoryId,omitempty"`
	OnHand           int        `json:"onHand"`
	MinimumThreshold int        `json:"minimumThreshold"`
	Status           string     `json:"status"`
}

func toStock(p domain.Product) stockResponse {
	return stockResponse{
		ProductID:        p.ID,
		Name:             p.Name,
		Brand:            p.Brand,
		CategoryID:       p.CategoryID,
		OnHand:           p.OnHand,
		MinimumThreshold: p.MinimumThreshold,
		Status:           p.Status().String(),
	}
}

type movementResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"productId"`
	Delta        int        `json:"delta"`
	BalanceAfter int        `json:"balanceAfter"`
	Reason       string     `json:"reason"`
	ActorID      uuid.UUID  `json:"actorId"`
	RefType      *string    `json:"refType,omitempty"`
	RefID        *uuid.UUID `json:"refId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toMovement(m domain.StockMovement) movementResponse {
	resp := movementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Delta:        m.Delta,
		BalanceAfter: m.BalanceAfter,
		Reason:       m.Reason,
		ActorID:      m.ActorID,
		RefID:        m.RefID,
		CreatedAt:    m.CreatedAt,
	}
	if m.RefType != nil {
		t := m.RefType.String()
		resp.RefType = &t
	}
	return resp
}

// ---------------------------------------------------------------------------
// Audit, notifications, suppliers
// ---------------------------------------------------------------------------

type auditResponse struct {
	ID                 uuid.UUID   `json:"id"`
	ActorID            uuid.UUID   `json:"actorId"`
	ActionType         string      `json:"actionType"`
	EntityType         *string     `json:"entityType,omitempty"`
	EntityID           *uuid.UUID  `json:"entityId,omitempty"`
	AffectedProductIDs []uuid.UUID `json:"affectedProductIds"`
	Description        string      `json:"description"`
	CreatedAt          time.Time   `json:"createdAt"`
}

func toAudit(e domain.AuditEntry) auditResponse {
	resp := auditResponse{
		ID:                 e.ID,
		ActorID:            e.ActorID,
		ActionType:         e.ActionType.String(),
		EntityID:           e.EntityID,
		AffectedProductIDs: e.AffectedProductIDs,
		Description:        e.Description,
		CreatedAt:          e.CreatedAt,
	}
	if resp.AffectedProductIDs == nil {
		resp.AffectedProductIDs = []uuid.UUID{}
	}
	if e.EntityType != nil {
		t := e.EntityType.String()
		resp.EntityType = &t
	}
	return resp
}

type notificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
	Read      bool           `json:"read"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toNotification(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Kind:      n.Kind.String(),
		Payload:   n.Payload,
		Read:      n.IsRead(),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

type supplierResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Contact  *string    `json:"contact,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	Score    string     `json:"score"`
	ScoredAt *time.Time `json:"scoredAt,omitempty"`
}

func toSupplier(s domain.Supplier) supplierResponse {
	return supplierResponse{
		ID:       s.ID,
		Name:     s.Name,
		Contact:  s.Contact,
		Email:    s.Email,
		Phone:    s.Phone,
		Score:    s.Score.StringFixed(2),
		ScoredAt: s.ScoredAt,
	}
}
