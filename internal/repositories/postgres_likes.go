package repositories

import (
	"context"
	"fmt"

	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/models"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for like edges.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

var likeTargetTables = map[models.LikeTarget]string{
	models.LikeTargetVideo:   "videos",
	models.LikeTargetComment: "comments",
	models.LikeTargetTweet:   "tweets",
}

// Toggle flips the like edge. The insert relies on the unique index over
// (user_id, target_kind, target_id): when the insert touches zero rows the
// edge already existed and is deleted instead. Concurrent toggles therefore
// settle on zero or one edge, never duplicates.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, like models.Like) (bool, error) {
	table, ok := likeTargetTables[like.TargetKind]
	if !ok {
		return false, fmt.Errorf("unknown like target kind %q", like.TargetKind)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, like.TargetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check like target: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	tag, err := conn.Exec(ctx, `
        INSERT INTO likes (id, user_id, target_kind, target_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id, target_kind, target_id) DO NOTHING
    `, like.ID, like.UserID, like.TargetKind, like.TargetID, like.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return true, nil
	}

	if _, err := conn.Exec(ctx, `
        DELETE FROM likes
        WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
    `, like.UserID, like.TargetKind, like.TargetID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	return false, nil
}

// ListLikedVideos returns the videos the user has liked, newest like first,
// each enriched with the owner's public projection.
func (r *PostgresLikeRepository) ListLikedVideos(ctx context.Context, userID string) ([]models.LikedVideo, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT v.id, v.title, v.video_file, v.thumbnail, v.views,
               u.id, u.username, u.fullname, u.avatar
        FROM likes l
        JOIN videos v ON v.id = l.target_id
        JOIN users u ON u.id = v.owner_id
        WHERE l.user_id = $1 AND l.target_kind = $2
        ORDER BY l.created_at DESC
    `, userID, models.LikeTargetVideo)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	var videos []models.LikedVideo
	for rows.Next() {
		var v models.LikedVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.VideoFile, &v.Thumbnail, &v.Views,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.Avatar); err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}

	return videos, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
