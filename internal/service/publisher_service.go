package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"maplemed-support-be/internal/dto"
	"maplemed-support-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventSink is an external bus. *nats.Publisher satisfies it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
	external  EventSink
}

// NewPublisherService publishes every event on the in-process topic.
// Crisis escalations are also forwarded to external when it is set.
func NewPublisherService(topicName string, pubSub message.Publisher, external EventSink) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		external:  external,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(dto.SupportEventMessage{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp(),
		Payload:    event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("marshal support event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	var errs []error
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		errs = append(errs, fmt.Errorf("publish %s: %w", ps.topicName, err))
	}
	if ps.external != nil && event.EventType() == events.TypeCrisisEscalated {
		if err := ps.external.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
