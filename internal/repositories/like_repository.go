package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// LikeRepository defines data access for like edges.
type LikeRepository interface {
	// Toggle flips the like edge for (like.UserID, like.TargetKind, like.TargetID):
	// it creates the edge when absent and reports true, or deletes it and
	// reports false. The decision is pushed into the store so that concurrent
	// toggles cannot produce duplicate edges. It fails with ErrNotFound when
	// the target entity does not exist.
	Toggle(ctx context.Context, like models.Like) (bool, error)
	// ListLikedVideos returns the videos the user has liked, each enriched
	// with the owner's public projection.
	ListLikedVideos(ctx context.Context, userID string) ([]models.LikedVideo, error)
}
