// Package pubsub provides a generic publish/subscribe event system.
// Brokers are owned by the components that publish (settings store, file
// watcher, logger); the UI subscribes through the Bubble Tea bridge in tea.go.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent announces a newly created record (tag, log entry).
	CreatedEvent EventType = "created"
	// SavedEvent announces a completed settings save.
	SavedEvent EventType = "saved"
	// SaveFailedEvent announces a settings save that returned an error.
	SaveFailedEvent EventType = "save-failed"
	// ReloadedEvent announces that the settings document was re-read from disk.
	ReloadedEvent EventType = "reloaded"
	// ChangedEvent announces an observed change to a watched file.
	ChangedEvent EventType = "changed"
	// ErrorEvent carries an asynchronous failure from a background component.
	ErrorEvent EventType = "error"
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
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
