package request

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/access"
)

// Get returns a request. Requesters only see their own; another
// requester's request is reported as not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
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
		return nil, fmt.Errorf("request %s: %w", id, domain.ErrNotFound)
	}
	return req, nil
}

// List returns requests matching the filter, newest first, and the total.
// Requesters are always restricted to their own requests.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Request, int, error) {
	actorID, err := access.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	filter := domain.RequestFilter{
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
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	return items, total, nil
}
