// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	CreatedEvent   EventType = "created"   // new entry (log lines)
	UpdatedEvent   EventType = "updated"   // existing state changed in place
	ReplacedEvent  EventType = "replaced"  // location rewritten without a history entry
	NavigatedEvent EventType = "navigated" // location moved to another history entry
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
// Publish reports how many subscribers received the event.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
