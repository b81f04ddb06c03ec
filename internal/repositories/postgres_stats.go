package repositories

import (
	"context"
	"fmt"

	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/models"
)

// PostgresStatsRepository computes dashboard aggregates straight from the
// entity tables; nothing is cached between calls.
type PostgresStatsRepository struct {
	pool db.Pool
}

// NewPostgresStatsRepository constructs a stats repository backed by PostgreSQL.
func NewPostgresStatsRepository(pool db.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

// ChannelStats gathers totals for the channel in a single round trip. Channels
// with no videos, subscribers, or likes report zeroes.
func (r *PostgresStatsRepository) ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT
            COALESCE((SELECT SUM(views) FROM videos WHERE owner_id = $1 AND is_published = TRUE), 0),
            (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
            (SELECT COUNT(*) FROM videos WHERE owner_id = $1 AND is_published = TRUE),
            (SELECT COUNT(*)
             FROM likes l
             JOIN videos v ON v.id = l.target_id
             WHERE l.target_kind = $2 AND v.owner_id = $1)
    `, channelID, models.LikeTargetVideo)

	var stats models.ChannelStats
	if err := row.Scan(&stats.TotalViews, &stats.TotalSubscribers, &stats.TotalVideos, &stats.TotalLikes); err != nil {
		return models.ChannelStats{}, fmt.Errorf("select channel stats: %w", err)
	}

	return stats, nil
}

// ChannelVideos lists the channel's published videos for the dashboard.
func (r *PostgresStatsRepository) ChannelVideos(ctx context.Context, channelID string) ([]models.ChannelVideo, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, title, thumbnail, views
        FROM videos
        WHERE owner_id = $1 AND is_published = TRUE
        ORDER BY created_at DESC
    `, channelID)
	if err != nil {
		return nil, fmt.Errorf("query channel videos: %w", err)
	}
	defer rows.Close()

	var videos []models.ChannelVideo
	for rows.Next() {
		var v models.ChannelVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.Thumbnail, &v.Views); err != nil {
			return nil, fmt.Errorf("scan channel video: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel videos: %w", err)
	}

	return videos, nil
}

var _ StatsRepository = (*PostgresStatsRepository)(nil)
