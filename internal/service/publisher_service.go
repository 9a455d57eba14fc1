package service

import (
	"context"
	"encoding/json"
	"time"

	"notes-web/internal/dto"
	"notes-web/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}

// activityRecorder publishes activity messages on behalf of the services.
// Failures are logged and never fail the request that caused them.
type activityRecorder struct {
	publisher IPublisherService
	log       logger.ILogger
}

func (a activityRecorder) record(ctx context.Context, activityType string, userId uuid.UUID, noteId *uuid.UUID) {
	if a.publisher == nil {
		return
	}

	payload, err := json.Marshal(dto.ActivityMessage{
		Type:       activityType,
		UserId:     userId,
		NoteId:     noteId,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		a.log.Warn("activity", "Failed to encode activity", map[string]interface{}{"type": activityType, "error": err})
		return
	}

	if err := a.publisher.Publish(ctx, payload); err != nil {
		a.log.Warn("activity", "Failed to publish activity", map[string]interface{}{"type": activityType, "error": err})
	}
}
