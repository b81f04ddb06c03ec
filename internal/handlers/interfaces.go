package handlers

import (
	"context"

	"github.com/streamhub/backend/internal/media"
	"github.com/streamhub/backend/internal/models"
	"github.com/streamhub/backend/internal/repositories"
)

// UserStore captures the persistence operations required by the account handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, user models.User) error
}

// SessionManager issues, refreshes, verifies, and revokes authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Verify(accessToken string) (string, error)
	Revoke(ctx context.Context, refreshToken string)
}

// VideoStore captures persistence for the video catalog.
type VideoStore interface {
	Create(ctx context.Context, video models.Video) error
	List(ctx context.Context, params repositories.VideoListParams) ([]models.Video, error)
	FindByID(ctx context.Context, id string) (models.Video, error)
	FetchAndCountView(ctx context.Context, id string) (models.Video, error)
	UpdateDetails(ctx context.Context, id string, update repositories.VideoUpdate) (models.Video, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (models.Video, error)
}

// CommentStore captures persistence for video comments.
type CommentStore interface {
	Create(ctx context.Context, comment models.Comment) error
	ListForVideo(ctx context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error)
	Update(ctx context.Context, id, ownerID, content string) (models.Comment, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// TweetStore captures persistence for tweets.
type TweetStore interface {
	Create(ctx context.Context, tweet models.Tweet) error
	ListForUser(ctx context.Context, userID string) ([]models.TweetWithOwner, error)
	Update(ctx context.Context, id, ownerID, content string) (models.Tweet, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// PlaylistStore captures persistence for playlists.
type PlaylistStore interface {
	Create(ctx context.Context, playlist models.Playlist) error
	ListForUser(ctx context.Context, userID string) ([]models.Playlist, error)
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, id, ownerID string, update repositories.PlaylistUpdate) (models.Playlist, error)
	Delete(ctx context.Context, id, ownerID string) error
	AddVideo(ctx context.Context, playlistID, ownerID, videoID string) (models.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, ownerID, videoID string) (models.Playlist, error)
}

// LikeStore captures persistence for like edges.
type LikeStore interface {
	Toggle(ctx context.Context, like models.Like) (bool, error)
	ListLikedVideos(ctx context.Context, userID string) ([]models.LikedVideo, error)
}

// SubscriptionStore captures persistence for subscription edges.
type SubscriptionStore interface {
	Toggle(ctx context.Context, sub models.Subscription) (bool, error)
	Subscribers(ctx context.Context, channelID string) ([]models.SubscriptionEntry, error)
	SubscriberCount(ctx context.Context, channelID string) (int64, error)
	Subscriptions(ctx context.Context, subscriberID string) ([]models.SubscriptionEntry, error)
	SubscriptionCount(ctx context.Context, subscriberID string) (int64, error)
}

// StatsStore captures the dashboard aggregation queries.
type StatsStore interface {
	ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string) ([]models.ChannelVideo, error)
}

// MediaIngestor schedules background persistence of staged uploads.
type MediaIngestor interface {
	Enqueue(ctx context.Context, job media.Job) error
}
