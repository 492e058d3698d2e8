package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/reference-data-service/internal/config"
	"github.com/spec-kit/reference-data-service/internal/events"
)

const publishTimeout = time.Second

// EventPublisher sends an encoded event to a pub/sub channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService forwards department events to subscribers outside the process.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  EventPublisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. With a nil publisher events are only logged.
func NewNotificationService(dispatcher events.Dispatcher, publisher EventPublisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDepartmentCreated, n.forward)
	n.dispatcher.Subscribe(events.EventDepartmentUpdated, n.forward)
	n.dispatcher.Subscribe(events.EventDepartmentDeleted, n.forward)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	n.logger.Info("department changed",
		zap.String("event_type", string(event.Type)),
		zap.Int64("department_id", event.DepartmentID),
		zap.Any("payload", event.Payload))

	if n.publisher == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := n.publisher.Publish(ctx, n.cfg.Channel, body); err != nil {
		return fmt.Errorf("publish to %s: %w", n.cfg.Channel, err)
	}
	return nil
}
