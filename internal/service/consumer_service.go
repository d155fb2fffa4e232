package service

import (
	"context"
	"encoding/json"

	"maplemed-support-be/internal/dto"
	"maplemed-support-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumer writes every support event to the conversation audit log
type auditConsumer struct {
	subscriber message.Subscriber
	topicName  string
	logger     logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, auditLogger logger.ILogger) IConsumerService {
	return &auditConsumer{
		subscriber: subscriber,
		topicName:  topicName,
		logger:     auditLogger,
	}
}

func (cs *auditConsumer) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *auditConsumer) processMessage(msg *message.Message) {
	// Nothing here is retriable, so every message is acked.
	defer msg.Ack()

	var event dto.SupportEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConversationAudit", "Failed to decode support event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	details := make(map[string]interface{}, len(event.Payload)+2)
	for k, v := range event.Payload {
		details[k] = v
	}
	details["message_id"] = msg.UUID
	details["occurred_at"] = event.OccurredAt

	cs.logger.Info("ConversationAudit", event.Type, details)
}
