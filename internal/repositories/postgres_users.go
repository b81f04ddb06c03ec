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

// PostgresUserRepository provides PostgreSQL-backed persistence for users.
type PostgresUserRepository struct {
	pool db.Pool
}

// NewPostgresUserRepository constructs a user repository backed by PostgreSQL.
func NewPostgresUserRepository(pool db.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, fullname, password_hash, avatar, cover_image, created_at, updated_at`

// Create persists a new user record.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO users (id, username, email, fullname, password_hash, avatar, cover_image, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, user.ID, user.Username, user.Email, user.FullName, user.Password, user.Avatar, user.CoverImage, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByID fetches a user by primary key.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByEmail fetches a user by their email address.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findBy(ctx, "email", email)
}

// FindByUsername fetches a user by their username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *PostgresUserRepository) findBy(ctx context.Context, column, value string) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.Password, &user.Avatar, &user.CoverImage, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by %s: %w", column, err)
	}

	return user, nil
}

// Update modifies an existing user record.
func (r *PostgresUserRepository) Update(ctx context.Context, user models.User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE users
        SET username = $2, email = $3, fullname = $4, password_hash = $5, avatar = $6, cover_image = $7, updated_at = $8
        WHERE id = $1
    `, user.ID, user.Username, user.Email, user.FullName, user.Password, user.Avatar, user.CoverImage, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
