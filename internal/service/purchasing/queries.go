package purchasing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// Get returns a purchase order. Requesters have no access to orders.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.orders.GetByID(ctx, id)
}

// List returns purchase orders matching the filter and the total.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.PurchaseOrder, int, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, 0, err
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	filter := domain.OrderFilter{
		Status:     input.Status,
		SupplierID: input.SupplierID,
		CreatedBy:  input.CreatedBy,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultLimit
	}

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	return items, total, nil
}

// AttachInvoice stores an invoice for an order that can still be received
// and returns the document reference to pass to Receive.
func (s *Service) AttachInvoice(ctx context.Context, orderID uuid.UUID, filename string, r io.Reader) (string, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return "", err
	}
	if orderID == uuid.Nil {
		return "", domain.NewValidationError("order_id", "required")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if !order.Status.CanTransitionTo(domain.OrderStatusDelivered) {
		return "", domain.NewTransitionError(domain.EntityTypePurchaseOrder, order.ID, order.Status, "attach invoice")
	}

	ref, err := s.documents.Put(ctx, invoiceFolder+"/"+order.ID.String(), filename, r)
	if err != nil {
		return "", fmt.Errorf("store invoice: %w", err)
	}

	s.log.InfoContext(ctx, "invoice attached",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("purchase_order_id", order.ID.String()),
		slog.String("ref", ref),
	)
	return ref, nil
}

// Invoice opens the invoice recorded when the order was received. An order
// without an invoice reports NotFound.
func (s *Service) Invoice(ctx context.Context, orderID uuid.UUID) (Document, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return Document{}, err
	}
	if orderID == uuid.Nil {
		return Document{}, domain.NewValidationError("order_id", "required")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return Document{}, err
	}
	if order.InvoiceRef == nil || *order.InvoiceRef == "" {
		return Document{}, fmt.Errorf("invoice for purchase order %s: %w", order.ID, domain.ErrNotFound)
	}

	body, err := s.documents.Open(ctx, *order.InvoiceRef)
	if err != nil {
		return Document{}, fmt.Errorf("open invoice: %w", err)
	}
	return Document{Name: documentName(*order.InvoiceRef), Body: body}, nil
}

// documentName recovers the uploaded file name from a stored reference,
// which is prefixed with a generated id.
func documentName(ref string) string {
	name := path.Base(ref)
	if len(name) > 37 && name[36] == '-' {
		if _, err := uuid.Parse(name[:36]); err == nil {
			return name[37:]
		}
	}
	return name
}
