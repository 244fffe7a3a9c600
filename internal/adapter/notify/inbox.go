package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

type notificationCreator interface {
	Create(ctx context.Context, n domain.Notification) error
}

// Inbox stores every notification as a row of the recipient's in-app inbox.
type Inbox struct {
	repo notificationCreator
	now  func() time.Time
}

// NewInbox creates an inbox dispatcher writing through repo.
func NewInbox(repo notificationCreator) *Inbox {
	return &Inbox{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Send inserts one unread notification for recipient.
func (d *Inbox) Send(ctx context.Context, recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any) error {
	err := d.repo.Create(ctx, domain.Notification{
		ID:          uuid.New(),
		RecipientID: recipient,
		Kind:        kind,
		Payload:     payload,
		CreatedAt:   d.now(),
	})
	if err != nil {
		return fmt.Errorf("inbox %s: %w", kind, err)
	}
	return nil
}
