package rest

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/purchasing"
)

type orderService interface {
	Create(ctx context.Context, input purchasing.CreateInput) (purchasing.Result, error)
	Validate(ctx context.Context, orderID uuid.UUID) (purchasing.Result, error)
	Receive(ctx context.Context, input purchasing.ReceiveInput) (purchasing.Result, error)
	ReturnOrder(ctx context.Context, input purchasing.ReasonInput) (purchasing.Result, error)
	Cancel(ctx context.Context, input purchasing.ReasonInput) (purchasing.Result, error)
	AttachInvoice(ctx context.Context, orderID uuid.UUID, filename string, r io.Reader) (string, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, input purchasing.ListInput) ([]domain.PurchaseOrder, int, error)
	Invoice(ctx context.Context, orderID uuid.UUID) (purchasing.Document, error)
}

// invoiceField is the multipart form field carrying the invoice file.
const invoiceField = "invoice"

// OrderHandler serves purchase order endpoints.
type OrderHandler struct {
	svc       orderService
	log       *slog.Logger
	maxUpload int64
}

// NewOrderHandler creates an OrderHandler. maxUpload bounds multipart
// receive bodies.
func NewOrderHandler(svc orderService, logger *slog.Logger, maxUpload int64) *OrderHandler {
	return &OrderHandler{svc: svc, log: logger.With("handler", "order"), maxUpload: maxUpload}
}

type orderLineBody struct {
	Kind      domain.LineKind `json:"kind"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
}

type createOrderBody struct {
	SupplierID    uuid.UUID       `json:"supplierId"`
	ExpectedDate  time.Time       `json:"expectedDate"`
	Lines         []orderLineBody `json:"lines"`
	SourceOrderID *uuid.UUID      `json:"sourceOrderId"`
}

type receiveBody struct {
	InvoiceRef *string `json:"invoiceRef"`
}

// Create handles POST /purchase-orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createOrderBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := purchasing.CreateInput{
		SupplierID:    body.SupplierID,
		ExpectedDate:  body.ExpectedDate,
		SourceOrderID: body.SourceOrderID,
		Lines:         make([]purchasing.LineInput, len(body.Lines)),
	}
	for i, l := range body.Lines {
		input.Lines[i] = purchasing.LineInput{Kind: l.Kind, ProductID: l.ProductID, Quantity: l.Quantity}
	}
	h.respond(w, r, http.StatusCreated)(h.svc.Create(r.Context(), input))
}

// List handles GET /purchase-orders?status=&supplier=&createdBy=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var input purchasing.ListInput
	var err error
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.OrderStatus(v)
		input.Status = &s
	}
	if input.SupplierID, err = queryUUID(r, "supplier"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.CreatedBy, err = queryUUID(r, "createdBy"); err != nil {
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
	writeJSON(w, http.StatusOK, listResponse[orderResponse]{Items: mapSlice(items, toOrder), Total: total})
}

// Get handles GET /purchase-orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrder(*o))
}

// Invoice handles GET /purchase-orders/{id}/invoice and streams the stored
// document.
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	doc, err := h.svc.Invoice(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	defer doc.Body.Close()

	contentType := mime.TypeByExtension(path.Ext(doc.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, doc.Body); err != nil {
		h.log.WarnContext(r.Context(), "invoice stream interrupted",
			slog.String("purchase_order_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}

// Validate handles POST /purchase-orders/{id}/validate.
func (h *OrderHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.Validate(r.Context(), id))
}

// Return handles POST /purchase-orders/{id}/return.
func (h *OrderHandler) Return(w http.ResponseWriter, r *http.Request) {
	input, ok := h.reasonInput(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.ReturnOrder(r.Context(), input))
}

// Cancel handles POST /purchase-orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	input, ok := h.reasonInput(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK)(h.svc.Cancel(r.Context(), input))
}

// Receive handles POST /purchase-orders/{id}/receive. The body is either
// JSON with an optional invoiceRef, or multipart/form-data with an
// "invoice" file that is stored before the order is received.
func (h *OrderHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := purchasing.ReceiveInput{OrderID: id}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		ref, err := h.storeInvoice(w, r, id)
		if err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		input.InvoiceRef = &ref
	} else {
		var body receiveBody
		if err := decodeOptionalJSON(w, r, &body); err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		input.InvoiceRef = body.InvoiceRef
	}

	h.respond(w, r, http.StatusOK)(h.svc.Receive(r.Context(), input))
}

func (h *OrderHandler) storeInvoice(w http.ResponseWriter, r *http.Request, orderID uuid.UUID) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	mr, err := r.MultipartReader()
	if err != nil {
		return "", domain.NewValidationError(invoiceField, "invalid multipart body")
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", domain.NewValidationError(invoiceField, "required")
		}
		if err != nil {
			return "", domain.NewValidationError(invoiceField, "invalid multipart body")
		}
		if part.FormName() != invoiceField || part.FileName() == "" {
			part.Close()
			continue
		}
		ref, err := h.svc.AttachInvoice(r.Context(), orderID, part.FileName(), part)
		part.Close()
		return ref, err
	}
}

func (h *OrderHandler) reasonInput(w http.ResponseWriter, r *http.Request) (purchasing.ReasonInput, bool) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return purchasing.ReasonInput{}, false
	}
	var body reasonBody
	if err := decodeOptionalJSON(w, r, &body); err != nil {
		writeDomainError(w, r, h.log, err)
		return purchasing.ReasonInput{}, false
	}
	return purchasing.ReasonInput{OrderID: id, Reason: body.Reason}, true
}

func (h *OrderHandler) respond(w http.ResponseWriter, r *http.Request, status int) func(purchasing.Result, error) {
	return func(result purchasing.Result, err error) {
		if err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		writeJSON(w, status, orderResult{
			Order:    toOrder(*result.Order),
			Changes:  result.Changes,
			Warnings: toWarnings(result.Warnings),
		})
	}
}
