package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// PlaylistUpdate carries the optional fields of a playlist update. Nil fields
// are left untouched.
type PlaylistUpdate struct {
	Name        *string
	Description *string
}

// PlaylistRepository defines data access for playlists and their membership.
// Membership is an ordered sequence; AddVideo appends even when the video is
// already present, and RemoveVideo removes every occurrence.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	ListForUser(ctx context.Context, userID string) ([]models.Playlist, error)
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, id, ownerID string, update PlaylistUpdate) (models.Playlist, error)
	Delete(ctx context.Context, id, ownerID string) error
	AddVideo(ctx context.Context, playlistID, ownerID, videoID string) (models.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, ownerID, videoID string) (models.Playlist, error)
}
