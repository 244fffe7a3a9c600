package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// Kafka publishes notifications to a single topic keyed by recipient, so
// one recipient's notifications stay ordered within a partition.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewKafka creates a Kafka dispatcher over an existing producer.
func NewKafka(producer sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic, now: func() time.Time { return time.Now().UTC() }}
}

// NewKafkaProducer builds an idempotent sync producer that waits for all
// in-sync replicas.
func NewKafkaProducer(brokers []string, retries int) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = retries
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// Send publishes one message and waits for the broker acknowledgement.
func (d *Kafka) Send(ctx context.Context, recipient uuid.UUID, kind domain.NotificationKind, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := newMessage(recipient, kind, payload, d.now())
	data, err := msg.encode()
	if err != nil {
		return err
	}

	_, _, err = d.producer.SendMessage(&sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(recipient.String()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(kind.String())},
			{Key: []byte("event-id"), Value: []byte(msg.ID.String())},
			{Key: []byte("timestamp"), Value: []byte(msg.CreatedAt.Format(time.RFC3339))},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka send %s: %w", kind, err)
	}
	return nil
}
