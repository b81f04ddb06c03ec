package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/models"
)

// PostgresSubscriptionRepository provides PostgreSQL-backed persistence for
// subscription edges.
type PostgresSubscriptionRepository struct {
	pool db.Pool
}

// NewPostgresSubscriptionRepository constructs a subscription repository backed by PostgreSQL.
func NewPostgresSubscriptionRepository(pool db.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

// Toggle flips the subscription edge for (subscriber, channel). The insert
// relies on the unique index over the pair, so concurrent toggles settle on
// zero or one edge. Subscribing to the own channel is rejected.
func (r *PostgresSubscriptionRepository) Toggle(ctx context.Context, sub models.Subscription) (bool, error) {
	if sub.SubscriberID == sub.ChannelID {
		return false, ErrSelfSubscription
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (subscriber_id, channel_id) DO NOTHING
    `, sub.ID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("insert subscription: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return true, nil
	}

	if _, err := conn.Exec(ctx, `
        DELETE FROM subscriptions
        WHERE subscriber_id = $1 AND channel_id = $2
    `, sub.SubscriberID, sub.ChannelID); err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}

	return false, nil
}

// Subscribers returns every subscriber of the channel with the subscriber
// expanded to its public projection.
func (r *PostgresSubscriptionRepository) Subscribers(ctx context.Context, channelID string) ([]models.SubscriptionEntry, error) {
	return r.listEntries(ctx, `
        SELECT u.id, u.username, u.fullname, u.avatar, s.created_at
        FROM subscriptions s
        JOIN users u ON u.id = s.subscriber_id
        WHERE s.channel_id = $1
        ORDER BY s.created_at DESC
    `, channelID)
}

// SubscriberCount counts the channel's subscription edges independently of the
// expanded listing.
func (r *PostgresSubscriptionRepository) SubscriberCount(ctx context.Context, channelID string) (int64, error) {
	return r.countEdges(ctx, `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID)
}

// Subscriptions returns every channel the subscriber follows with the channel
// expanded to its public projection.
func (r *PostgresSubscriptionRepository) Subscriptions(ctx context.Context, subscriberID string) ([]models.SubscriptionEntry, error) {
	return r.listEntries(ctx, `
        SELECT u.id, u.username, u.fullname, u.avatar, s.created_at
        FROM subscriptions s
        JOIN users u ON u.id = s.channel_id
        WHERE s.subscriber_id = $1
        ORDER BY s.created_at DESC
    `, subscriberID)
}

// SubscriptionCount counts the edges originating from the subscriber.
func (r *PostgresSubscriptionRepository) SubscriptionCount(ctx context.Context, subscriberID string) (int64, error) {
	return r.countEdges(ctx, `SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`, subscriberID)
}

func (r *PostgresSubscriptionRepository) listEntries(ctx context.Context, query, id string) ([]models.SubscriptionEntry, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var entries []models.SubscriptionEntry
	for rows.Next() {
		var e models.SubscriptionEntry
		if err := rows.Scan(&e.User.ID, &e.User.Username, &e.User.FullName, &e.User.Avatar, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return entries, nil
}

func (r *PostgresSubscriptionRepository) countEdges(ctx context.Context, query, id string) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var count int64
	if err := conn.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}

	return count, nil
}

var _ SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)
