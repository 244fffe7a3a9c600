package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/audit"
)

type auditService interface {
	RecordManual(ctx context.Context, input audit.RecordInput) (domain.AuditEntry, error)
	List(ctx context.Context, input audit.ListInput) ([]domain.AuditEntry, int, error)
	History(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error)
}

// AuditHandler serves the audit trail.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

type recordAuditBody struct {
	ActionType  domain.AuditAction `json:"actionType"`
	ProductIDs  []uuid.UUID        `json:"productIds"`
	Description string             `json:"description"`
}

// List handles GET /audit?actor=&action=&product=&entity=&since=.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	var input audit.ListInput
	var err error
	q := r.URL.Query()

	if input.ActorID, err = queryUUID(r, "actor"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.ProductID, err = queryUUID(r, "product"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.EntityID, err = queryUUID(r, "entity"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if v := q.Get("action"); v != "" {
		a := domain.AuditAction(v)
		input.ActionType = &a
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeDomainError(w, r, h.log, domain.NewValidationError("since", "must be an RFC 3339 timestamp"))
			return
		}
		input.Since = &t
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
	writeJSON(w, http.StatusOK, listResponse[auditResponse]{Items: mapSlice(items, toAudit), Total: total})
}

// Record handles POST /audit.
func (h *AuditHandler) Record(w http.ResponseWriter, r *http.Request) {
	var body recordAuditBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	entry, err := h.svc.RecordManual(r.Context(), audit.RecordInput{
		ActionType:  body.ActionType,
		ProductIDs:  body.ProductIDs,
		Description: body.Description,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAudit(entry))
}

// History handles GET /audit/entities/{id}: the full trail of one request,
// exceptional request or purchase order, newest first.
func (h *AuditHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	items, err := h.svc.History(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[auditResponse]{Items: mapSlice(items, toAudit), Total: len(items)})
}
