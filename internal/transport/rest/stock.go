package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/internal/service/ledger"
)

type stockService interface {
	GetStock(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	CheckAvailability(ctx context.Context, lines []domain.StockLine) (domain.Availability, error)
	Adjust(ctx context.Context, input ledger.AdjustInput) (domain.StockChange, error)
	ListMovements(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error)
	ListAlerts(ctx context.Context) ([]domain.Product, error)
}

// StockHandler serves stock ledger endpoints. Stock lookups and availability
// checks are shared with internal callers, so access for them is checked
// here; movements, alerts and adjustments are checked by the ledger.
type StockHandler struct {
	svc stockService
	log *slog.Logger
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(svc stockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{svc: svc, log: logger.With("handler", "stock")}
}

type checkBody struct {
	Lines []requestLineBody `json:"lines"`
}

type availabilityResponse struct {
	OK           bool               `json:"ok"`
	Insufficient []domain.Shortfall `json:"insufficient"`
}

type adjustBody struct {
	ProductID uuid.UUID `json:"productId"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
}

// Get handles GET /products/{id}/stock.
func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := access.Require(r.Context()); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	p, err := h.svc.GetStock(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toStock(*p))
}

// Check handles POST /stock/check. A shortfall is a normal 200 answer here.
func (h *StockHandler) Check(w http.ResponseWriter, r *http.Request) {
	if _, err := access.Require(r.Context()); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var body checkBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	lines := make([]domain.StockLine, len(body.Lines))
	for i, l := range body.Lines {
		lines[i] = domain.StockLine{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	av, err := h.svc.CheckAvailability(r.Context(), lines)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	resp := availabilityResponse{OK: av.OK(), Insufficient: av.Insufficient}
	if resp.Insufficient == nil {
		resp.Insufficient = []domain.Shortfall{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Adjust handles POST /stock/adjust.
func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var body adjustBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	change, err := h.svc.Adjust(r.Context(), ledger.AdjustInput{
		ProductID: body.ProductID,
		Delta:     body.Delta,
		Reason:    body.Reason,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// Movements handles GET /stock/movements?product=&limit=&offset=.
func (h *StockHandler) Movements(w http.ResponseWriter, r *http.Request) {
	productID, err := queryUUID(r, "product")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if productID == nil {
		writeDomainError(w, r, h.log, domain.NewValidationError("product", "required"))
		return
	}
	limit, offset, err := page(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	items, err := h.svc.ListMovements(r.Context(), *productID, limit, offset)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toMovement))
}

// Alerts handles GET /stock/alerts.
func (h *StockHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAlerts(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toStock))
}
