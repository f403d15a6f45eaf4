package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultTopic = "order-events"
	batchSize    = 100
)

// EventSource is the order event outbox.
type EventSource interface {
	UnpublishedOrderEvents(ctx context.Context, limit int) ([]*domain.OrderEvent, error)
	MarkOrderEventPublished(ctx context.Context, id int64) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Recorder interface {
	EventPublished(ok bool)
}

// OutboxPoller relays order events from the outbox table to kafka. An event
// is marked published only after the broker accepted it, so delivery is at
// least once.
type OutboxPoller struct {
	tick    time.Duration
	timeout time.Duration
	source  EventSource
	writer  MessageWriter
	metrics Recorder
	logger  *zap.Logger
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
}

func NewOutboxPoller(source EventSource, writer MessageWriter, metrics Recorder, logger *zap.Logger) *OutboxPoller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutboxPoller{
		tick:    time.Second,
		timeout: 5 * time.Second,
		source:  source,
		writer:  writer,
		metrics: metrics,
		logger:  logger,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// processUnpublishedEvents returns how many events were published.
func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) int {
	events, err := p.source.UnpublishedOrderEvents(ctx, batchSize)
	if err != nil {
		p.logger.Error("failed to fetch order events", zap.Error(err))
		return 0
	}

	published := 0
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.record(false)
			p.logger.Warn("failed to publish order event",
				zap.Int64("event_id", event.ID),
				zap.Int64("order_id", event.OrderID),
				zap.Error(err),
			)
			// keep ordering per order: stop at the first failure
			return published
		}
		p.record(true)

		if err := p.source.MarkOrderEventPublished(ctx, event.ID); err != nil {
			p.logger.Error("failed to mark order event published", zap.Int64("event_id", event.ID), zap.Error(err))
			return published
		}
		published++
	}
	return published
}

func (p *OutboxPoller) publish(ctx context.Context, event *domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}

func (p *OutboxPoller) record(ok bool) {
	if p.metrics != nil {
		p.metrics.EventPublished(ok)
	}
}
