package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// CommentRepository defines data access for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	// ListForVideo returns the video's comments in insertion order with each
	// owner expanded to its public projection.
	ListForVideo(ctx context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error)
	// Update rewrites the comment content. It fails with ErrNotFound when the
	// comment does not exist and ErrForbidden when ownerID does not match.
	Update(ctx context.Context, id, ownerID, content string) (models.Comment, error)
	// Delete removes the comment under the same ownership rules as Update.
	Delete(ctx context.Context, id, ownerID string) error
}
