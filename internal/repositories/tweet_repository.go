package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// TweetRepository defines data access for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet models.Tweet) error
	// ListForUser returns the user's tweets newest first with the owner expanded.
	ListForUser(ctx context.Context, userID string) ([]models.TweetWithOwner, error)
	Update(ctx context.Context, id, ownerID, content string) (models.Tweet, error)
	Delete(ctx context.Context, id, ownerID string) error
}
