package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/stats"
)

type statsService interface {
	Dashboard(ctx context.Context, input stats.DashboardInput) (domain.Dashboard, error)
}

// StatsHandler serves the management dashboard.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type statsTotalsResponse struct {
	Orders           int `json:"orders"`
	Staff            int `json:"staff"`
	Suppliers        int `json:"suppliers"`
	ApprovedRequests int `json:"approvedRequests"`
}

type monthlyRequestsResponse struct {
	Month       string `json:"month"`
	Requests    int    `json:"requests"`
	Exceptional int    `json:"exceptional"`
}

type productDemandResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Requests  int       `json:"requests"`
	Quantity  int       `json:"quantity"`
}

type supplierOrdersResponse struct {
	SupplierID uuid.UUID `json:"supplierId"`
	Name       string    `json:"name"`
	Orders     int       `json:"orders"`
	Delivered  int       `json:"delivered"`
	Returned   int       `json:"returned"`
	Cancelled  int       `json:"cancelled"`
}

type dashboardResponse struct {
	From              time.Time                 `json:"from"`
	To                time.Time                 `json:"to"`
	Totals            statsTotalsResponse       `json:"totals"`
	RequestsPerMonth  []monthlyRequestsResponse `json:"requestsPerMonth"`
	TopProducts       []productDemandResponse   `json:"topProducts"`
	OrdersPerSupplier []supplierOrdersResponse  `json:"ordersPerSupplier"`
}

func toDashboard(d domain.Dashboard) dashboardResponse {
	return dashboardResponse{
		From:   d.Window.From,
		To:     d.Window.To,
		Totals: statsTotalsResponse(d.Totals),
		RequestsPerMonth: mapSlice(d.RequestsPerMonth, func(m domain.MonthlyRequests) monthlyRequestsResponse {
			return monthlyRequestsResponse{Month: m.Month.Format("2006-01"), Requests: m.Requests, Exceptional: m.Exceptional}
		}),
		TopProducts: mapSlice(d.TopProducts, func(p domain.ProductDemand) productDemandResponse {
			return productDemandResponse(p)
		}),
		OrdersPerSupplier: mapSlice(d.OrdersPerSupplier, func(s domain.SupplierOrders) supplierOrdersResponse {
			return supplierOrdersResponse(s)
		}),
	}
}

// Dashboard handles GET /stats?from=&to=&top=.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		input stats.DashboardInput
		err   error
	)
	if input.From, err = queryDate(r, "from"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.To, err = queryDate(r, "to"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.Top, err = queryInt(r, "top", 0); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	d, err := h.svc.Dashboard(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboard(d))
}
