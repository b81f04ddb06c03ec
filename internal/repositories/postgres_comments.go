package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/models"
)

// PostgresCommentRepository provides PostgreSQL-backed persistence for comments.
type PostgresCommentRepository struct {
	pool db.Pool
}

// NewPostgresCommentRepository constructs a comment repository backed by PostgreSQL.
func NewPostgresCommentRepository(pool db.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create persists a new comment.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, comment.ID, comment.VideoID, comment.OwnerID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
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
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// ListForVideo returns one page of the video's comments in insertion order,
// each owner expanded to its public projection.
func (r *PostgresCommentRepository) ListForVideo(ctx context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	rows, err := conn.Query(ctx, `
        SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
               u.id, u.username, u.fullname, u.avatar
        FROM comments c
        JOIN users u ON u.id = c.owner_id
        WHERE c.video_id = $1
        ORDER BY c.created_at ASC, c.id ASC
        LIMIT $2 OFFSET $3
    `, videoID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.CommentWithOwner
	for rows.Next() {
		var c models.CommentWithOwner
		if err := rows.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.FullName, &c.Owner.Avatar); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// Update rewrites the comment content when the acting user owns it.
func (r *PostgresCommentRepository) Update(ctx context.Context, id, ownerID, content string) (models.Comment, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Comment{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE comments
        SET content = $3, updated_at = NOW()
        WHERE id = $1 AND owner_id = $2
        RETURNING id, video_id, owner_id, content, created_at, updated_at
    `, id, ownerID, content)

	var comment models.Comment
	if err := row.Scan(&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, ownershipError(ctx, conn.QueryRow, "comments", id)
		}
		return models.Comment{}, fmt.Errorf("update comment: %w", err)
	}

	return comment, nil
}

// Delete removes the comment when the acting user owns it.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id, ownerID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ownershipError(ctx, conn.QueryRow, "comments", id)
	}

	return nil
}

type queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row

// ownershipError distinguishes a missing record from one owned by another user
// after a gated mutation touched zero rows.
func ownershipError(ctx context.Context, queryRow queryRowFunc, table, id string) error {
	var exists bool
	if err := queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s existence: %w", table, err)
	}
	if exists {
		return ErrForbidden
	}
	return ErrNotFound
}

var _ CommentRepository = (*PostgresCommentRepository)(nil)
