package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// Dispatcher delivers one notification to one recipient.
type Dispatcher interface {
	Send(ctx context.Context, recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any) error
}

// Multi sends through every dispatcher in order. A failing dispatcher does
// not stop the others; all errors are joined.
type Multi []Dispatcher

// Send implements Dispatcher.
func (m Multi) Send(ctx context.Context, recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any) error {
	var errs []error
	for _, d := range m {
		if err := d.Send(ctx, recipient, kind, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
