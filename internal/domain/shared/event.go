package shared

import "time"

// DomainEvent is the wire envelope for events published to the broker.
// Consumers rely on the eventType discriminator and the free-form data block.
type DomainEvent struct {
	EventType string      `json:"eventType"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewDomainEvent creates an event stamped with the current time.
func NewDomainEvent(eventType string, data interface{}) DomainEvent {
	return DomainEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
