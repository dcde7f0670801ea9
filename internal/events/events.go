// Package events publishes marketplace domain events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artisanhub/internal/logging"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const (
	ProductCreated          = "product.created"
	ProductUpdated          = "product.updated"
	ProductDeleted          = "product.deleted"
	ProductsBulkCreated     = "products.bulk_created"
	ArtistRegistered        = "artist.registered"
	ArtistActivationChanged = "artist.activation_changed"
	CommissionChanged       = "platform.commission_changed"
	CheckoutSessionCreated  = "checkout.session.created"
)

// Event is one published message. Key selects the partition.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

// New stamps an event with the current time.
func New(typ, key string, data any) Event {
	return Event{Type: typ, Key: key, OccurredAt: time.Now().UTC(), Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Kafka publishes events to a single topic through a synchronous producer.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafka connects a sync producer to brokers.
func NewKafka(brokers []string, topic string, logger *zap.Logger) (*Kafka, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = "artisanhub"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("new sync producer: %w", err)
	}
	return NewKafkaWithProducer(producer, topic, logger), nil
}

// NewKafkaWithProducer wraps an existing producer.
func NewKafkaWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Kafka {
	return &Kafka{producer: producer, topic: topic, logger: logging.OrNop(logger).Named("events")}
}

func (k *Kafka) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.Key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(e.Type)},
		},
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		k.logger.Error("publish event", zap.String("type", e.Type), zap.String("key", e.Key), zap.Error(err))
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	k.logger.Debug("published event",
		zap.String("type", e.Type),
		zap.String("key", e.Key),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}

// Noop drops every event. Used when kafka is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                        { return nil }

// Emit publishes e and logs instead of failing; a lost event never fails the caller's operation.
func Emit(ctx context.Context, p Publisher, logger *zap.Logger, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logging.OrNop(logger).Warn("event dropped", zap.String("type", e.Type), zap.Error(err))
	}
}
