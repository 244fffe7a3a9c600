package exceptional

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
)

// Get returns an exceptional request. Requesters only see their own.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ExceptionalRequest, error) {
	actorID, err := access.Require(ctx)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if access.OwnOnly(ctx) && req.RequesterID != actorID {
		return nil, fmt.Errorf("exceptional request %s: %w", id, domain.ErrNotFound)
	}
	return req, nil
}

// List returns exceptional requests matching the filter and the total.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.ExceptionalRequest, int, error) {
	actorID, err := access.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	filter := domain.ExceptionalFilter{
		Status:      input.Status,
		RequesterID: input.RequesterID,
		Limit:       input.Limit,
		Offset:      input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultLimit
	}
	if access.OwnOnly(ctx) {
		filter.RequesterID = &actorID
	}

	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list exceptional requests: %w", err)
	}
	return items, total, nil
}

// ListExceptionalProducts looks up previously requested exceptional
// products by name.
func (s *Service) ListExceptionalProducts(ctx context.Context, search string, limit int) ([]domain.ExceptionalProduct, error) {
	if _, err := access.Require(ctx); err != nil {
		return nil, err
	}
	if limit < 0 || limit > MaxLimit {
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", MaxLimit))
	}
	if limit == 0 {
		limit = DefaultSearchLimit
	}

	products, err := s.requests.SearchProducts(ctx, strings.TrimSpace(search), limit)
	if err != nil {
		return nil, fmt.Errorf("search exceptional products: %w", err)
	}
	return products, nil
}

// Allocations returns the purchase order allocations of a request.
func (s *Service) Allocations(ctx context.Context, requestID uuid.UUID) ([]domain.ExceptionalAllocation, error) {
	if _, err := s.Get(ctx, requestID); err != nil {
		return nil, err
	}
	allocations, err := s.requests.ListAllocations(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return allocations, nil
}
