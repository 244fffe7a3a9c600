package fulfillment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// RequestTaken decrements the approved quantities of a request, records
// REQUEST_TAKEN and prepares the requester notification. A ledger failure
// is returned unchanged so the caller's transaction rolls back.
func (s *Service) RequestTaken(ctx context.Context, req *domain.Request, actorID uuid.UUID) (Outcome, error) {
	lines := req.ApprovedStockLines()

	var changes []domain.StockChange
	if len(lines) > 0 {
		var err error
		changes, err = s.ledger.Decrement(ctx, domain.StockMutation{
			Lines:   lines,
			ActorID: actorID,
			Reason:  "request taken",
			Ref:     &domain.StockMovementRef{Type: domain.EntityTypeRequest, ID: req.ID},
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := s.record(ctx, actorID, domain.AuditActionRequestTaken, domain.EntityTypeRequest, req.ID,
		productIDs(lines), fmt.Sprintf("request taken: %s", describeLines(lines))); err != nil {
		return Outcome{}, err
	}

	events := []domain.NotificationEvent{{
		Kind:       domain.NotificationRequestTaken,
		Recipients: []uuid.UUID{req.RequesterID},
		Payload: map[string]any{
			"requestId": req.ID.String(),
			"lines":     linePayload(lines),
		},
	}}

	return s.outcome(ctx, changes, events)
}

// ExceptionalTaken records EXCEPTIONAL_TAKEN and prepares the requester
// notification. Exceptional items are never held in stock, so the ledger
// is not touched.
func (s *Service) ExceptionalTaken(ctx context.Context, req *domain.ExceptionalRequest, actorID uuid.UUID) (Outcome, error) {
	names := make([]string, len(req.Lines))
	for i, l := range req.Lines {
		names[i] = fmt.Sprintf("%s x%d", l.ProductName, l.Quantity)
	}

	if err := s.record(ctx, actorID, domain.AuditActionExceptionalTaken, domain.EntityTypeExceptional, req.ID,
		nil, "exceptional request taken: "+strings.Join(names, ", ")); err != nil {
		return Outcome{}, err
	}

	return Outcome{Events: []domain.NotificationEvent{{
		Kind:       domain.NotificationExceptionalTaken,
		Recipients: []uuid.UUID{req.RequesterID},
		Payload:    map[string]any{"exceptionalRequestId": req.ID.String()},
	}}}, nil
}

// OrderDelivered increments stock for the catalog lines of a delivered
// purchase order, records ORDER_DELIVERED and prepares the creator
// notification. Exceptional lines do not enter stock.
func (s *Service) OrderDelivered(ctx context.Context, o *domain.PurchaseOrder, actorID uuid.UUID) (Outcome, error) {
	lines := o.CatalogStockLines()

	var changes []domain.StockChange
	if len(lines) > 0 {
		var err error
		changes, err = s.ledger.Increment(ctx, domain.StockMutation{
			Lines:   lines,
			ActorID: actorID,
			Reason:  "purchase order delivered",
			Ref:     &domain.StockMovementRef{Type: domain.EntityTypePurchaseOrder, ID: o.ID},
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("increment stock: %w", err)
		}
	}

	desc := fmt.Sprintf("purchase order delivered: %s", describeLines(lines))
	if o.InvoiceRef != nil {
		desc += fmt.Sprintf(" (invoice %s)", *o.InvoiceRef)
	}
	if err := s.record(ctx, actorID, domain.AuditActionOrderDelivered, domain.EntityTypePurchaseOrder, o.ID,
		productIDs(lines), desc); err != nil {
		return Outcome{}, err
	}

	events := []domain.NotificationEvent{{
		Kind:       domain.NotificationOrderDelivered,
		Recipients: []uuid.UUID{o.CreatedBy},
		Payload: map[string]any{
			"purchaseOrderId": o.ID.String(),
			"supplierId":      o.SupplierID.String(),
			"lines":           linePayload(lines),
		},
	}}

	return s.outcome(ctx, changes, events)
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action domain.AuditAction, entity domain.EntityType, id uuid.UUID, products []uuid.UUID, desc string) error {
	entityID := id
	err := s.audit.Log(ctx, domain.AuditEntry{
		ID:                 uuid.New(),
		ActorID:            actorID,
		ActionType:         action,
		EntityType:         &entity,
		EntityID:           &entityID,
		AffectedProductIDs: products,
		Description:        desc,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

// outcome appends a single stock alert when any resulting status is LOW or
// OUT. Alert recipients are resolved inside the transaction so the set is
// consistent with the change.
func (s *Service) outcome(ctx context.Context, changes []domain.StockChange, events []domain.NotificationEvent) (Outcome, error) {
	if !domain.NeedsAlert(changes) {
		return Outcome{Changes: changes, Events: events}, nil
	}

	recipients, err := s.staff.ListIDsByRole(ctx, domain.AlertRoles)
	if err != nil {
		return Outcome{}, fmt.Errorf("list alert recipients: %w", err)
	}
	if len(recipients) > 0 {
		events = append(events, domain.NotificationEvent{
			Kind:       domain.NotificationStockAlert,
			Recipients: recipients,
			Payload:    map[string]any{"products": alertPayload(changes)},
		})
	}

	return Outcome{Changes: changes, Events: events}, nil
}
