package messaging

import "context"

// Publisher publishes domain events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishEvent(context.Context, string, string, any) error { return nil }
