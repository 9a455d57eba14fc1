package events

import "time"

// Event is anything that can be published to the external event bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

// Payload includes the event type and time so consumers need only the body.
func (e BaseEvent) Payload() map[string]interface{} {
	payload := make(map[string]interface{}, len(e.Data)+2)
	for k, v := range e.Data {
		payload[k] = v
	}
	payload["type"] = e.Type
	payload["occurred_at"] = e.OccurredAt
	return payload
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
