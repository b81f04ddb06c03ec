package repositories

import (
	"context"

	"github.com/streamhub/backend/internal/models"
)

// StatsRepository computes aggregate read views for a channel's dashboard.
type StatsRepository interface {
	// ChannelStats sums views and counts published videos, subscribers, and
	// likes on the channel's videos. Empty result sets yield zeroes.
	ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error)
	// ChannelVideos lists the channel's published videos for the dashboard.
	ChannelVideos(ctx context.Context, channelID string) ([]models.ChannelVideo, error)
}
