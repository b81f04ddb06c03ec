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

// PostgresTweetRepository provides PostgreSQL-backed persistence for tweets.
type PostgresTweetRepository struct {
	pool db.Pool
}

// NewPostgresTweetRepository constructs a tweet repository backed by PostgreSQL.
func NewPostgresTweetRepository(pool db.Pool) *PostgresTweetRepository {
	return &PostgresTweetRepository{pool: pool}
}

// Create persists a new tweet.
func (r *PostgresTweetRepository) Create(ctx context.Context, tweet models.Tweet) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `, tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt)
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
		return fmt.Errorf("insert tweet: %w", err)
	}

	return nil
}

// ListForUser returns the user's tweets newest first with the owner expanded.
func (r *PostgresTweetRepository) ListForUser(ctx context.Context, userID string) ([]models.TweetWithOwner, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
               u.id, u.username, u.fullname, u.avatar
        FROM tweets t
        JOIN users u ON u.id = t.owner_id
        WHERE t.owner_id = $1
        ORDER BY t.created_at DESC, t.id DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}
	defer rows.Close()

	var tweets []models.TweetWithOwner
	for rows.Next() {
		var t models.TweetWithOwner
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
			&t.Owner.ID, &t.Owner.Username, &t.Owner.FullName, &t.Owner.Avatar); err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}

	return tweets, nil
}

// Update rewrites the tweet content when the acting user owns it.
func (r *PostgresTweetRepository) Update(ctx context.Context, id, ownerID, content string) (models.Tweet, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Tweet{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE tweets
        SET content = $3, updated_at = NOW()
        WHERE id = $1 AND owner_id = $2
        RETURNING id, owner_id, content, created_at, updated_at
    `, id, ownerID, content)

	var tweet models.Tweet
	if err := row.Scan(&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tweet{}, ownershipError(ctx, conn.QueryRow, "tweets", id)
		}
		return models.Tweet{}, fmt.Errorf("update tweet: %w", err)
	}

	return tweet, nil
}

// Delete removes the tweet when the acting user owns it.
func (r *PostgresTweetRepository) Delete(ctx context.Context, id, ownerID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM tweets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ownershipError(ctx, conn.QueryRow, "tweets", id)
	}

	return nil
}

var _ TweetRepository = (*PostgresTweetRepository)(nil)
