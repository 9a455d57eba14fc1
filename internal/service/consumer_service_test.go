package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notes-web/internal/dto"
	"notes-web/internal/pkg/logger"
	"notes-web/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLogger keeps Info messages so tests can see what reached the activity log.
type memoryLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *memoryLogger) Debug(string, string, map[string]interface{}) {}
func (l *memoryLogger) Warn(string, string, map[string]interface{})  {}
func (l *memoryLogger) Error(string, string, map[string]interface{}) {}
func (l *memoryLogger) Sync() error                                  { return nil }

func (l *memoryLogger) Info(_ string, message string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, message)
}

func (l *memoryLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *recordingForwarder) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *recordingForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestConsumerService_WritesActivityLogAndForwards(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	activityLog := &memoryLogger{}
	forwarder := &recordingForwarder{}
	consumer := NewConsumerService(pubSub, "activity", activityLog, logger.NewNopLogger(), forwarder)
	require.NoError(t, consumer.Consume(ctx))

	recorder := activityRecorder{
		publisher: NewPublisherService("activity", pubSub),
		log:       logger.NewNopLogger(),
	}
	noteId := uuid.New()
	recorder.record(ctx, dto.ActivityNoteCreated, uuid.New(), &noteId)

	assert.Eventually(t, func() bool {
		return len(activityLog.messages()) == 1 && forwarder.count() == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{dto.ActivityNoteCreated}, activityLog.messages())

	forwarder.mu.Lock()
	evt := forwarder.events[0]
	forwarder.mu.Unlock()
	assert.Equal(t, dto.ActivityNoteCreated, evt.EventType())
	assert.Equal(t, noteId.String(), evt.Payload()["note_id"])
}

func TestConsumerService_SkipsMalformedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	activityLog := &memoryLogger{}
	consumer := NewConsumerService(pubSub, "activity", activityLog, logger.NewNopLogger(), nil)
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish("activity", message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	publisher := NewPublisherService("activity", pubSub)
	recorder := activityRecorder{publisher: publisher, log: logger.NewNopLogger()}
	recorder.record(ctx, dto.ActivityUserLoggedIn, uuid.New(), nil)

	// The bad payload is acked and the next message still arrives.
	assert.Eventually(t, func() bool {
		return len(activityLog.messages()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{dto.ActivityUserLoggedIn}, activityLog.messages())
}
