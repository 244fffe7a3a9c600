// Package audit exposes the audit trail: filtered reads and the direct
// recording of catalog maintenance actions by staff.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

const (
	DefaultLimit         = 50
	MaxLimit             = 500
	MaxDescriptionLength = 2000
	MaxProducts          = 100
)

type auditRepo interface {
	Create(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int, error)
	GetByEntity(ctx context.Context, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error)
}

// Service reads and appends audit entries.
type Service struct {
	repo auditRepo
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new audit service.
func NewService(log *slog.Logger, repo auditRepo) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "audit"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// RecordInput is a manually recorded audit entry.
type RecordInput struct {
	ActionType  domain.AuditAction
	ProductIDs  []uuid.UUID
	Description string
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError
	if !i.ActionType.IsManual() {
		errs = append(errs, domain.FieldError{Field: "action_type", Message: "must be PRODUCT_ADDED, PRODUCT_UPDATED or PRODUCT_REMOVED"})
	}
	if len(i.ProductIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "product_ids", Message: "at least one product required"})
	}
	if len(i.ProductIDs) > MaxProducts {
		errs = append(errs, domain.FieldError{Field: "product_ids", Message: fmt.Sprintf("max %d products", MaxProducts)})
	}
	for idx, id := range i.ProductIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("product_ids[%d]", idx), Message: "must not be nil"})
		}
	}
	desc := strings.TrimSpace(i.Description)
	if desc == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if len(desc) > MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", MaxDescriptionLength)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RecordManual appends a catalog maintenance entry. Lifecycle actions are
// written only by the engines and are rejected here.
func (s *Service) RecordManual(ctx context.Context, input RecordInput) (domain.AuditEntry, error) {
	actorID, err := access.Require(ctx, domain.UserRoleWarehouse)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.AuditEntry{}, err
	}

	entity := domain.EntityTypeProduct
	entry := domain.AuditEntry{
		ID:                 uuid.New(),
		ActorID:            actorID,
		ActionType:         input.ActionType,
		EntityType:         &entity,
		AffectedProductIDs: input.ProductIDs,
		Description:        strings.TrimSpace(input.Description),
		CreatedAt:          s.now(),
	}
	if len(input.ProductIDs) == 1 {
		id := input.ProductIDs[0]
		entry.EntityID = &id
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("record audit entry: %w", err)
	}

	s.log.InfoContext(ctx, "audit entry recorded",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", actorID.String()),
		slog.String("action", created.ActionType.String()),
	)
	return created, nil
}

// ListInput filters the audit trail.
type ListInput struct {
	ActorID    *uuid.UUID
	ActionType *domain.AuditAction
	ProductID  *uuid.UUID
	EntityID   *uuid.UUID
	Since      *time.Time
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.ActionType != nil && !i.ActionType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown action type"})
	}
	if i.Limit < 0 || i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// List returns audit entries newest first and the total matching count.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.AuditEntry, int, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, 0, err
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	filter := domain.AuditFilter{
		ActorID:    input.ActorID,
		ActionType: input.ActionType,
		ProductID:  input.ProductID,
		EntityID:   input.EntityID,
		Since:      input.Since,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	return items, total, nil
}

// History returns the entries of one request or order, newest first.
func (s *Service) History(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error) {
	if _, err := access.Require(ctx, domain.UserRoleManager, domain.UserRoleWarehouse); err != nil {
		return nil, err
	}
	if entityID == uuid.Nil {
		return nil, domain.NewValidationError("entity_id", "required")
	}
	items, err := s.repo.GetByEntity(ctx, entityID, MaxLimit)
	if err != nil {
		return nil, fmt.Errorf("entity history: %w", err)
	}
	return items, nil
}
