package service

import (
	"context"
	"encoding/json"

	"notes-web/internal/dto"
	"notes-web/internal/pkg/logger"
	"notes-web/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder ships activity to an external bus. pkg/nats.Publisher implements it.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	activityLog logger.ILogger
	log         logger.ILogger
	forwarder   EventForwarder
}

// NewConsumerService wires the activity consumer. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	activityLog logger.ILogger,
	log logger.ILogger,
	forwarder EventForwarder,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		activityLog: activityLog,
		log:         log,
		forwarder:   forwarder,
	}
}

// Consume subscribes to the activity topic and processes messages in the
// background until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var activity dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &activity); err != nil {
		cs.log.Error("activity", "Dropping malformed activity message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// Ack so a bad payload is not redelivered forever.
		msg.Ack()
		return
	}

	details := map[string]interface{}{
		"user_id":     activity.UserId.String(),
		"occurred_at": activity.OccurredAt,
	}
	if activity.NoteId != nil {
		details["note_id"] = activity.NoteId.String()
	}
	cs.activityLog.Info("activity", activity.Type, details)

	if cs.forwarder != nil {
		evt := events.BaseEvent{
			Type:       activity.Type,
			Data:       details,
			OccurredAt: activity.OccurredAt,
		}
		if err := cs.forwarder.Publish(ctx, evt); err != nil {
			cs.log.Warn("activity", "Failed to forward activity event", map[string]interface{}{
				"type":  activity.Type,
				"error": err,
			})
		}
	}

	msg.Ack()
}
