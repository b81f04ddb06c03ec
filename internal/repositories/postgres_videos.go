package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/media"
	"github.com/streamhub/backend/internal/models"
)

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

const videoColumns = `id, owner_id, title, description, video_file, thumbnail, duration, views, is_published, asset_status, created_at, updated_at`

// videoSortColumns whitelists the fields exposed through the sortBy query parameter.
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"views":     "views",
	"duration":  "duration",
}

// SortableVideoColumn reports whether sortBy names a permitted sort field.
func SortableVideoColumn(sortBy string) bool {
	_, ok := videoSortColumns[sortBy]
	return ok
}

// Create stores a new video record.
func (r *PostgresVideoRepository) Create(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO videos (id, owner_id, title, description, video_file, thumbnail, duration, views, is_published, asset_status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, video.ID, video.OwnerID, video.Title, video.Description, video.VideoFile, video.Thumbnail, video.Duration, video.Views, video.IsPublished, video.AssetStatus, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert video: %w", err)
	}

	return nil
}

// List returns a filtered, ordered, paginated slice of the video catalog.
func (r *PostgresVideoRepository) List(ctx context.Context, params VideoListParams) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	query := `SELECT ` + videoColumns + ` FROM videos WHERE is_published = TRUE`
	args := []any{}

	if params.OwnerID != "" {
		args = append(args, params.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}

	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	orderBy := "created_at"
	if col, ok := videoSortColumns[params.SortBy]; ok {
		orderBy = col
	}
	direction := "ASC"
	if params.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderBy, direction)

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	args = append(args, limit, (page-1)*limit)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

// FindByID loads a video without touching its view counter.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("select video: %w", err)
	}

	return video, nil
}

// FetchAndCountView loads a video and increments its view counter in one
// statement, so concurrent fetches never lose an update.
func (r *PostgresVideoRepository) FetchAndCountView(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE videos
        SET views = views + 1
        WHERE id = $1
        RETURNING `+videoColumns+`
    `, id)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("increment video views: %w", err)
	}

	return video, nil
}

// UpdateDetails applies a partial update to the video's descriptive fields.
func (r *PostgresVideoRepository) UpdateDetails(ctx context.Context, id string, update VideoUpdate) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE videos
        SET title = COALESCE($2, title),
            description = COALESCE($3, description),
            thumbnail = COALESCE($4, thumbnail),
            updated_at = NOW()
        WHERE id = $1
        RETURNING `+videoColumns+`
    `, id, update.Title, update.Description, update.Thumbnail)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("update video: %w", err)
	}

	return video, nil
}

// Delete removes a video record.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// TogglePublish flips the published flag and returns the updated record.
func (r *PostgresVideoRepository) TogglePublish(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE videos
        SET is_published = NOT is_published, updated_at = NOW()
        WHERE id = $1
        RETURNING `+videoColumns+`
    `, id)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("toggle video publish: %w", err)
	}

	return video, nil
}

// MarkAssetReady records successful ingestion of the uploaded assets.
func (r *PostgresVideoRepository) MarkAssetReady(ctx context.Context, videoID, videoURL, thumbnailURL string, duration float64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET asset_status = $2,
            video_file = $3,
            thumbnail = $4,
            duration = $5,
            updated_at = NOW()
        WHERE id = $1
    `, videoID, models.AssetStatusReady, videoURL, thumbnailURL, duration)
	if err != nil {
		return fmt.Errorf("update video asset status ready: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkAssetFailed records a failed ingestion attempt for the provided video.
func (r *PostgresVideoRepository) MarkAssetFailed(ctx context.Context, videoID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET asset_status = $2, updated_at = NOW()
        WHERE id = $1
    `, videoID, models.AssetStatusFailed)
	if err != nil {
		return fmt.Errorf("update video asset status failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (models.Video, error) {
	var video models.Video
	err := row.Scan(&video.ID, &video.OwnerID, &video.Title, &video.Description, &video.VideoFile, &video.Thumbnail, &video.Duration, &video.Views, &video.IsPublished, &video.AssetStatus, &video.CreatedAt, &video.UpdatedAt)
	return video, err
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)
var _ media.AssetUpdater = (*PostgresVideoRepository)(nil)
