package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// ListResult is one page of the caller's inbox.
type ListResult struct {
	Items  []domain.Notification
	Total  int
	Unread int
}

// List returns a page of the caller's notifications, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ListResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return ListResult{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	items, total, err := s.inbox.List(ctx, userID, input.UnreadOnly, limit, input.Offset)
	if err != nil {
		return ListResult{}, fmt.Errorf("list notifications: %w", err)
	}

	unread, err := s.inbox.CountUnread(ctx, userID)
	if err != nil {
		return ListResult{}, fmt.Errorf("count unread notifications: %w", err)
	}

	return ListResult{Items: items, Total: total, Unread: unread}, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, input MarkReadInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.inbox.MarkRead(ctx, userID, input.NotificationID, s.now()); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the caller as read and
// returns how many were updated.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.inbox.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	s.log.InfoContext(ctx, "notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int("updated_count", n),
	)
	return n, nil
}
