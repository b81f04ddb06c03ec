package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/models"
)

// PostgresPlaylistRepository provides PostgreSQL-backed persistence for playlists.
type PostgresPlaylistRepository struct {
	pool db.Pool
}

// NewPostgresPlaylistRepository constructs a playlist repository backed by PostgreSQL.
func NewPostgresPlaylistRepository(pool db.Pool) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{pool: pool}
}

// Create persists a new empty playlist.
func (r *PostgresPlaylistRepository) Create(ctx context.Context, playlist models.Playlist) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description, playlist.CreatedAt, playlist.UpdatedAt)
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
		return fmt.Errorf("insert playlist: %w", err)
	}

	return nil
}

// ListForUser returns the user's playlists including their video membership.
func (r *PostgresPlaylistRepository) ListForUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, owner_id, name, description, created_at, updated_at
        FROM playlists
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}

	var playlists []models.Playlist
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	for i := range playlists {
		videoIDs, err := r.videoIDs(ctx, conn, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].VideoIDs = videoIDs
	}

	return playlists, nil
}

// FindByID loads a playlist and its ordered video membership.
func (r *PostgresPlaylistRepository) FindByID(ctx context.Context, id string) (models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return r.findByIDOnConn(ctx, conn, id)
}

func (r *PostgresPlaylistRepository) findByIDOnConn(ctx context.Context, conn *pgxpool.Conn, id string) (models.Playlist, error) {
	row := conn.QueryRow(ctx, `
        SELECT id, owner_id, name, description, created_at, updated_at
        FROM playlists
        WHERE id = $1
    `, id)

	var p models.Playlist
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Playlist{}, ErrNotFound
		}
		return models.Playlist{}, fmt.Errorf("select playlist: %w", err)
	}

	videoIDs, err := r.videoIDs(ctx, conn, id)
	if err != nil {
		return models.Playlist{}, err
	}
	p.VideoIDs = videoIDs

	return p, nil
}

func (r *PostgresPlaylistRepository) videoIDs(ctx context.Context, conn *pgxpool.Conn, playlistID string) ([]string, error) {
	rows, err := conn.Query(ctx, `
        SELECT video_id
        FROM playlist_videos
        WHERE playlist_id = $1
        ORDER BY position ASC
    `, playlistID)
	if err != nil {
		return nil, fmt.Errorf("query playlist videos: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist videos: %w", err)
	}

	return ids, nil
}

// Update applies a partial update to name and description when the acting user
// owns the playlist.
func (r *PostgresPlaylistRepository) Update(ctx context.Context, id, ownerID string, update PlaylistUpdate) (models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE playlists
        SET name = COALESCE($3, name),
            description = COALESCE($4, description),
            updated_at = NOW()
        WHERE id = $1 AND owner_id = $2
    `, id, ownerID, update.Name, update.Description)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("update playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.Playlist{}, ownershipError(ctx, conn.QueryRow, "playlists", id)
	}

	return r.findByIDOnConn(ctx, conn, id)
}

// Delete removes the playlist and its membership when the acting user owns it.
func (r *PostgresPlaylistRepository) Delete(ctx context.Context, id, ownerID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM playlists WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ownershipError(ctx, conn.QueryRow, "playlists", id)
	}

	return nil
}

// AddVideo appends the video to the playlist sequence. Duplicate membership is
// permitted; the video simply appears again at the tail.
func (r *PostgresPlaylistRepository) AddVideo(ctx context.Context, playlistID, ownerID, videoID string) (models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := r.checkOwnership(ctx, conn, playlistID, ownerID); err != nil {
		return models.Playlist{}, err
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO playlist_videos (playlist_id, video_id, position, added_at)
        SELECT $1, $2, COALESCE(MAX(position) + 1, 0), NOW()
        FROM playlist_videos
        WHERE playlist_id = $1
    `, playlistID, videoID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.Playlist{}, ErrNotFound
		}
		return models.Playlist{}, fmt.Errorf("insert playlist video: %w", err)
	}

	return r.findByIDOnConn(ctx, conn, playlistID)
}

// RemoveVideo deletes every occurrence of the video from the playlist.
func (r *PostgresPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, ownerID, videoID string) (models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := r.checkOwnership(ctx, conn, playlistID, ownerID); err != nil {
		return models.Playlist{}, err
	}

	if _, err := conn.Exec(ctx, `
        DELETE FROM playlist_videos
        WHERE playlist_id = $1 AND video_id = $2
    `, playlistID, videoID); err != nil {
		return models.Playlist{}, fmt.Errorf("delete playlist video: %w", err)
	}

	return r.findByIDOnConn(ctx, conn, playlistID)
}

func (r *PostgresPlaylistRepository) checkOwnership(ctx context.Context, conn *pgxpool.Conn, playlistID, ownerID string) error {
	var storedOwner string
	if err := conn.QueryRow(ctx, `SELECT owner_id FROM playlists WHERE id = $1`, playlistID).Scan(&storedOwner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select playlist owner: %w", err)
	}
	if storedOwner != ownerID {
		return ErrForbidden
	}
	return nil
}

var _ PlaylistRepository = (*PostgresPlaylistRepository)(nil)
