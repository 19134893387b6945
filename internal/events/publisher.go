package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/ielts-prep/admin-service/internal/models"
)

// ContentTopic carries content change notifications consumed by the
// practice-facing service to refresh its caches.
const ContentTopic = "admin.content.events"

// Action enumerates what happened to a content entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ContentEvent describes one admin mutation of test content.
type ContentEvent struct {
	Module     models.SkillModule `json:"module"`
	Entity     string             `json:"entity"`
	EntityID   uint               `json:"entity_id"`
	Action     Action             `json:"action"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher emits content events. Publish failures are logged and never
// propagate: event delivery is best-effort and must not fail the admin
// request that triggered it.
type Publisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewPublisher builds a Kafka-backed publisher when brokers are configured,
// otherwise an in-process pub/sub that keeps local setups broker-free.
func NewPublisher(brokers []string, logger *slog.Logger) (*Publisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if len(brokers) == 0 {
		return &Publisher{
			publisher: gochannel.NewGoChannel(gochannel.Config{}, wmLogger),
			logger:    logger,
		}, nil
	}

	kafkaPublisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &Publisher{publisher: kafkaPublisher, logger: logger}, nil
}

// PublishContentEvent emits a content change notification.
func (p *Publisher) PublishContentEvent(ctx context.Context, event ContentEvent) {
	if p == nil || p.publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal content event",
			"error", err, "module", event.Module, "entity", event.Entity)
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("module", string(event.Module))
	msg.Metadata.Set("action", string(event.Action))

	if err := p.publisher.Publish(ContentTopic, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish content event",
			"error", err,
			"module", event.Module,
			"entity", event.Entity,
			"entity_id", event.EntityID,
			"action", event.Action)
	}
}

// Close shuts the underlying publisher down.
func (p *Publisher) Close() error {
	if p == nil || p.publisher == nil {
		return nil
	}
	return p.publisher.Close()
}
