package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// VideoListParams controls filtering, ordering, and pagination of the video catalog.
type VideoListParams struct {
	OwnerID  string
	Query    string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// VideoUpdate carries the optional fields of a video detail update. Nil fields
// are left untouched.
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

// VideoRepository exposes data access for the video catalog.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	List(ctx context.Context, params VideoListParams) ([]models.Video, error)
	FindByID(ctx context.Context, id string) (models.Video, error)
	// FetchAndCountView loads a video and increments its view counter as a
	// single atomic statement.
	FetchAndCountView(ctx context.Context, id string) (models.Video, error)
	UpdateDetails(ctx context.Context, id string, update VideoUpdate) (models.Video, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (models.Video, error)
}
