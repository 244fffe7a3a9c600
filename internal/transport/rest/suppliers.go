package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/supplier"
)

type supplierService interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	Rescore(ctx context.Context) (supplier.RescoreResult, error)
}

// SupplierHandler serves the supplier directory and scoring.
type SupplierHandler struct {
	svc supplierService
	log *slog.Logger
}

// NewSupplierHandler creates a SupplierHandler.
func NewSupplierHandler(svc supplierService, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{svc: svc, log: logger.With("handler", "supplier")}
}

type scoreChangeResponse struct {
	SupplierID uuid.UUID `json:"supplierId"`
	Score      string    `json:"score"`
	Orders     int       `json:"orders"`
}

type rescoreResponse struct {
	Updated []scoreChangeResponse `json:"updated"`
	Skipped int                   `json:"skipped"`
}

// List handles GET /suppliers.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toSupplier))
}

// Rescore handles POST /suppliers/rescore.
func (h *SupplierHandler) Rescore(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Rescore(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rescoreResponse{
		Updated: mapSlice(res.Updated, func(c supplier.ScoreChange) scoreChangeResponse {
			return scoreChangeResponse{SupplierID: c.SupplierID, Score: c.Score.StringFixed(2), Orders: c.Orders}
		}),
		Skipped: res.Skipped,
	})
}
