package rest

import "net/http"

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health        *HealthHandler
	Requests      *RequestHandler
	Exceptional   *ExceptionalHandler
	Orders        *OrderHandler
	Stock         *StockHandler
	Audit         *AuditHandler
	Notifications *NotificationHandler
	Suppliers     *SupplierHandler
	Stats         *StatsHandler
}

// NewRouter registers every route on a ServeMux. Health endpoints stay outside
// the api middleware so they are reachable without credentials.
func NewRouter(h Handlers, api func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	routes := http.NewServeMux()

	routes.HandleFunc("POST /requests", h.Requests.Submit)
	routes.HandleFunc("GET /requests", h.Requests.List)
	routes.HandleFunc("GET /requests/{id}", h.Requests.Get)
	routes.HandleFunc("POST /requests/{id}/approve", h.Requests.Approve)
	routes.HandleFunc("POST /requests/{id}/reject", h.Requests.Reject)
	routes.HandleFunc("POST /requests/{id}/take", h.Requests.Take)

	routes.HandleFunc("POST /exceptional-requests", h.Exceptional.Submit)
	routes.HandleFunc("GET /exceptional-requests", h.Exceptional.List)
	routes.HandleFunc("GET /exceptional-requests/{id}", h.Exceptional.Get)
	routes.HandleFunc("GET /exceptional-requests/{id}/allocations", h.Exceptional.Allocations)
	routes.HandleFunc("POST /exceptional-requests/{id}/accept", h.Exceptional.Accept)
	routes.HandleFunc("POST /exceptional-requests/{id}/reject", h.Exceptional.Reject)
	routes.HandleFunc("POST /exceptional-requests/{id}/order", h.Exceptional.Order)
	routes.HandleFunc("POST /exceptional-requests/{id}/deliver", h.Exceptional.Deliver)
	routes.HandleFunc("POST /exceptional-requests/{id}/take", h.Exceptional.Take)
	routes.HandleFunc("GET /exceptional-products", h.Exceptional.Products)

	routes.HandleFunc("POST /purchase-orders", h.Orders.Create)
	routes.HandleFunc("GET /purchase-orders", h.Orders.List)
	routes.HandleFunc("GET /purchase-orders/{id}", h.Orders.Get)
	routes.HandleFunc("GET /purchase-orders/{id}/invoice", h.Orders.Invoice)
	routes.HandleFunc("POST /purchase-orders/{id}/validate", h.Orders.Validate)
	routes.HandleFunc("POST /purchase-orders/{id}/receive", h.Orders.Receive)
	routes.HandleFunc("POST /purchase-orders/{id}/return", h.Orders.Return)
	routes.HandleFunc("POST /purchase-orders/{id}/cancel", h.Orders.Cancel)

	routes.HandleFunc("GET /products/{id}/stock", h.Stock.Get)
	routes.HandleFunc("POST /stock/check", h.Stock.Check)
	routes.HandleFunc("POST /stock/adjust", h.Stock.Adjust)
	routes.HandleFunc("GET /stock/movements", h.Stock.Movements)
	routes.HandleFunc("GET /stock/alerts", h.Stock.Alerts)

	routes.HandleFunc("GET /audit", h.Audit.List)
	routes.HandleFunc("POST /audit", h.Audit.Record)
	routes.HandleFunc("GET /audit/entities/{id}", h.Audit.History)

	routes.HandleFunc("GET /notifications", h.Notifications.List)
	routes.HandleFunc("POST /notifications/{id}/read", h.Notifications.MarkRead)
	routes.HandleFunc("POST /notifications/read-all", h.Notifications.MarkAllRead)

	routes.HandleFunc("GET /suppliers", h.Suppliers.List)
	routes.HandleFunc("POST /suppliers/rescore", h.Suppliers.Rescore)

	routes.HandleFunc("GET /stats", h.Stats.Dashboard)

	var handler http.Handler = routes
	if api != nil {
		handler = api(routes)
	}
	mux.Handle("/", handler)

	return mux
}
