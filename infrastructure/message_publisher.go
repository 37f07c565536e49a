package infrastructure

import (
	"context"
)

// MessagePublisher defines the interface for publishing messages to a message bus
type MessagePublisher interface {
	// Publish publishes a message to the specified subject. messageID lets the
	// server drop duplicates of the same message.
	Publish(ctx context.Context, subject, messageID string, data []byte) error
}
