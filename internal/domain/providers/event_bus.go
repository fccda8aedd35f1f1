package providers

import (
	"context"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RestroomEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RestroomEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelRestroomUpdates is the channel for all restroom updates
	EventChannelRestroomUpdates = "restroom:updates"

	// EventChannelRestroomPrefix is the prefix for restroom-specific channels
	EventChannelRestroomPrefix = "restroom:"
)

// GetRestroomChannel returns the channel name for a specific restroom
func GetRestroomChannel(restroomID string) string {
	return EventChannelRestroomPrefix + restroomID
}
