package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/exceptional"
)

type exceptionalService interface {
	Submit(ctx context.Context, input exceptional.SubmitInput) (exceptional.Result, error)
	Accept(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error)
	Reject(ctx context.Context, input exceptional.RejectInput) (exceptional.Result, error)
	RecordOrder(ctx context.Context, input exceptional.RecordOrderInput) (exceptional.Result, error)
	MarkDelivered(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error)
	MarkTaken(ctx context.Context, requestID uuid.UUID) (exceptional.Result, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error)
	List(ctx context.Context, input exceptional.ListInput) ([]domain.ExceptionalRequest, int, error)
	ListExceptionalProducts(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error)
	Allocations(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error)
}

// ExceptionalHandler serves exceptional request endpoints.
type ExceptionalHandler struct {
	svc exceptionalService
	log *slog.Logger
}

// NewExceptionalHandler creates an ExceptionalHandler.
func NewExceptionalHandler(svc exceptionalService, logger *slog.Logger) *ExceptionalHandler {
	return &ExceptionalHandler{svc: svc, log: logger.With("handler", "exceptional")}
}

type exceptionalLineBody struct {
	ExceptionalProductID *uuid.UUID `json:"exceptionalProductId"`
	Name                 string     `json:"name"`
	Brand                *string    `json:"brand"`
	Quantity             int        `json:"quantity"`
}

type submitExceptionalBody struct {
	Lines []exceptionalLineBody `json:"lines"`
}

type allocationLineBody struct {
	LineID     uuid.UUID `json:"lineId"`
	OrderedQty int       `json:"orderedQty"`
}

type recordOrderBody struct {
	PurchaseOrderID uuid.UUID            `json:"purchaseOrderId"`
	Lines           []allocationLineBody `json:"lines"`
}

// Submit handles POST /exceptional-requests.
func (h *ExceptionalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitExceptionalBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := exceptional.SubmitInput{Lines: make([]exceptional.LineInput, len(body.Lines))}
	for i, l := range body.Lines {
		input.Lines[i] = exceptional.LineInput{
			ExceptionalProductID: l.ExceptionalProductID,
			Name:                 l.Name,
			Brand:                l.Brand,
			Quantity:             l.Quantity,
		}
	}

	h.respond(w, r, http.StatusCreated)(h.svc.Submit(r.Context(), input))
}

// List handles GET /exceptional-requests?status=&requester=.
func (h *ExceptionalHandler) List(w http.ResponseWriter, r *http.Request) {
	var input exceptional.ListInput
	var err error
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.ExceptionalStatus(v)
		input.Status = &s
	}
	if input.RequesterID, err = queryUUID(r, "requester"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.Limit, input.Offset, err = page(r); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	items, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[exceptionalResponse]{Items: mapSlice(items, toExceptional), Total: total})
}

// Get handles GET /exceptional-requests/{id}.
func (h *ExceptionalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	req, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExceptional(*req))
}

// Allocations handles GET /exceptional-requests/{id}/allocations.
func (h *ExceptionalHandler) Allocations(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	items, err := h.svc.Allocations(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toAllocation))
}

// Accept handles POST /exceptional-requests/{id}/accept.
func (h *ExceptionalHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.Accept(r.Context(), id))
}

// Reject handles POST /exceptional-requests/{id}/reject.
func (h *ExceptionalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var body reasonBody
	if err := decodeOptionalJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.Reject(r.Context(), exceptional.RejectInput{RequestID: id, Reason: body.Reason}))
}

// Order handles POST /exceptional-requests/{id}/order.
func (h *ExceptionalHandler) Order(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var body recordOrderBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := exceptional.RecordOrderInput{
		RequestID:       id,
		PurchaseOrderID: body.PurchaseOrderID,
		Lines:           make([]exceptional.OrderLine, len(body.Lines)),
	}
	for i, l := range body.Lines {
		input.Lines[i] = exceptional.OrderLine{LineID: l.LineID, OrderedQty: l.OrderedQty}
	}
	h.respond(w, r, http.StatusOK)(h.svc.RecordOrder(r.Context(), input))
}

// Deliver handles POST /exceptional-requests/{id}/deliver.
func (h *ExceptionalHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.MarkDelivered(r.Context(), id))
}

// Take handles POST /exceptional-requests/{id}/take.
func (h *ExceptionalHandler) Take(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.MarkTaken(r.Context(), id))
}

// Products handles GET /exceptional-products?q=&limit=.
func (h *ExceptionalHandler) Products(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	items, err := h.svc.ListExceptionalProducts(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toExceptionalProduct))
}

// respond writes a transition result or the error that replaced it.
func (h *ExceptionalHandler) respond(w http.ResponseWriter, r *http.Request, status int) func(exceptional.Result, error) {
	return func(result exceptional.Result, err error) {
		if err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		writeJSON(w, status, exceptionalResult{
			Request:  toExceptional(*result.Request),
			Warnings: toWarnings(result.Warnings),
		})
	}
}
