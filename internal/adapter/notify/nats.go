package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// publisher is the subset of *nats.Conn used for dispatch.
type publisher interface {
	Publish(subj string, data []byte) error
}

// NATS publishes notifications on "<prefix>.<kind>" subjects, one message
// per recipient. Subject tokens are lower case, e.g. notifications.stock_alert.
type NATS struct {
	conn   publisher
	prefix string
	now    func() time.Time
}

// NewNATS creates a NATS dispatcher. An empty prefix defaults to "notifications".
func NewNATS(conn publisher, prefix string) *NATS {
	if prefix == "" {
		prefix = "notifications"
	}
	return &NATS{conn: conn, prefix: strings.TrimSuffix(prefix, "."), now: func() time.Time { return time.Now().UTC() }}
}

// ConnectNATS dials the server with reconnects enabled.
func ConnectNATS(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return nc, nil
}

// Subject returns the subject a notification kind is published on.
func (d *NATS) Subject(kind domain.NotificationKind) string {
	return d.prefix + "." + strings.ToLower(kind.String())
}

// Send publishes one message. Delivery is at most once.
func (d *NATS) Send(ctx context.Context, recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := newMessage(recipient, kind, payload, d.now()).encode()
	if err != nil {
		return err
	}

	subject := d.Subject(kind)
	if err := d.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
