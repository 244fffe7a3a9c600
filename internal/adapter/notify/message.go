// Package notify holds the notification dispatchers: the in-app inbox,
// NATS and Kafka publishers, and a fan-out over several of them.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// Message is the JSON document published on the message transports.
type Message struct {
	ID          uuid.UUID      `json:"id"`
	Kind        string         `json:"kind"`
	RecipientID uuid.UUID      `json:"recipient_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func newMessage(recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any, at time.Time) Message {
	return Message{
		ID:          uuid.New(),
		Kind:        kind.String(),
		RecipientID: recipient,
		Payload:     payload,
		CreatedAt:   at,
	}
}

func (m Message) encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal notification %s: %w", m.Kind, err)
	}
	return data, nil
}
