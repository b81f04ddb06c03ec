package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// SubscriptionRepository defines data access for channel subscription edges.
type SubscriptionRepository interface {
	// Toggle flips the subscription edge for (sub.SubscriberID, sub.ChannelID)
	// and reports whether the edge exists after the call. It fails with
	// ErrSelfSubscription when subscriber and channel match and ErrNotFound
	// when the channel user does not exist.
	Toggle(ctx context.Context, sub models.Subscription) (bool, error)
	// Subscribers expands every edge pointing at the channel with the
	// subscriber's public projection.
	Subscribers(ctx context.Context, channelID string) ([]models.SubscriptionEntry, error)
	SubscriberCount(ctx context.Context, channelID string) (int64, error)
	// Subscriptions is the symmetric query keyed by subscriber, expanding the
	// channel side of each edge.
	Subscriptions(ctx context.Context, subscriberID string) ([]models.SubscriptionEntry, error)
	SubscriptionCount(ctx context.Context, subscriberID string) (int64, error)
}
