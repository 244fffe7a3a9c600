package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationEvent is a pending notification produced inside a transition
// and dispatched after the transaction commits.
type NotificationEvent struct {
	Kind       NotificationKind
	Recipients []uuid.UUID
	Payload    map[string]any
}

// Notification is one inbox row for a single recipient.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Kind        NotificationKind
	Payload     map[string]any
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// IsRead reports whether the notification has been marked as read.
func (n Notification) IsRead() bool { return n.ReadAt != nil }
