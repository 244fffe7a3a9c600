package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/request"
)

type requestService interface {
	Submit(ctx context.Context, input request.SubmitInput) (request.Result, error)
	Approve(ctx context.Context, input request.ApproveInput) (request.Result, error)
	Reject(ctx context.Context, input request.RejectInput) (request.Result, error)
	MarkTaken(ctx context.Context, requestID uuid.UUID) (request.Result, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, input request.ListInput) ([]domain.Request, int, error)
}

// RequestHandler serves catalog request endpoints.
type RequestHandler struct {
	svc requestService
	log *slog.Logger
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(svc requestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{svc: svc, log: logger.With("handler", "request")}
}

type requestLineBody struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type submitRequestBody struct {
	Lines []requestLineBody `json:"lines"`
}

type approveLineBody struct {
	ProductID   uuid.UUID `json:"productId"`
	ApprovedQty int       `json:"approvedQty"`
}

type approveRequestBody struct {
	Lines []approveLineBody `json:"lines"`
}

type reasonBody struct {
	Reason string `json:"reason"`
}

// Submit handles POST /requests.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := request.SubmitInput{Lines: make([]request.LineInput, len(body.Lines))}
	for i, l := range body.Lines {
		input.Lines[i] = request.LineInput{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	result, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.writeResult(w, http.StatusCreated, result)
}

// List handles GET /requests?status=&requester=&limit=&offset=.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	var input request.ListInput
	var err error
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.RequestStatus(v)
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
	writeJSON(w, http.StatusOK, listResponse[requestResponse]{Items: mapSlice(items, toRequest), Total: total})
}

// Get handles GET /requests/{id}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, toRequest(*req))
}

// Approve handles POST /requests/{id}/approve.
func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var body approveRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := request.ApproveInput{RequestID: id, Lines: make([]request.ApproveLine, len(body.Lines))}
	for i, l := range body.Lines {
		input.Lines[i] = request.ApproveLine{ProductID: l.ProductID, ApprovedQty: l.ApprovedQty}
	}

	result, err := h.svc.Approve(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.writeResult(w, http.StatusOK, result)
}

// Reject handles POST /requests/{id}/reject.
func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.svc.Reject(r.Context(), request.RejectInput{RequestID: id, Reason: body.Reason})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.writeResult(w, http.StatusOK, result)
}

// Take handles POST /requests/{id}/take.
func (h *RequestHandler) Take(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	result, err := h.svc.MarkTaken(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.writeResult(w, http.StatusOK, result)
}

func (h *RequestHandler) writeResult(w http.ResponseWriter, status int, result request.Result) {
	writeJSON(w, status, requestResult{
		Request:  toRequest(*result.Request),
		Changes:  result.Changes,
		Warnings: toWarnings(result.Warnings),
	})
}
