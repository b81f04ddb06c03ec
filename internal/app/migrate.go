package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamhub/backend/internal/config"
	"github.com/streamhub/backend/internal/db"
)

const (
	migrationMaxRetries  = 3
	migrationBaseBackoff = 100 * time.Millisecond
	migrationMaxBackoff  = 3 * time.Second
)

var retryablePgErrorCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

func runMigrations(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	migrations, dir, err := collectMigrations(cfg.MigrationDir)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	switch command {
	case "status":
		for _, name := range migrations {
			mark := " "
			if _, ok := applied[name]; ok {
				mark = "x"
			}
			fmt.Printf("[%s] %s\n", mark, name)
		}
		return nil
	case "up", "":
		if len(migrations) == 0 {
			fmt.Println("no migrations to apply")
			return nil
		}

		for _, name := range migrations {
			if _, ok := applied[name]; ok {
				continue
			}

			contents, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("read migration %s: %w", name, err)
			}

			if err := applyMigration(ctx, conn, name, string(contents)); err != nil {
				return err
			}

			fmt.Printf("applied migration %s\n", name)
		}
		return nil
	case "down":
		return errors.New("down migrations are not supported yet")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}

// collectMigrations lists the .sql files under the configured directory in
// lexical order, which doubles as application order.
func collectMigrations(dir string) ([]string, string, error) {
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("determine working directory: %w", err)
		}
		dir = filepath.Join(wd, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("read migrations directory: %w", err)
	}

	var migrations []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		migrations = append(migrations, entry.Name())
	}
	sort.Strings(migrations)

	return migrations, dir, nil
}

func appliedVersions(ctx context.Context, conn *pgxpool.Conn) (map[string]struct{}, error) {
	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
                version TEXT PRIMARY KEY,
                applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	rows, err := conn.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("fetch applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}

	return applied, nil
}

// applyMigration runs one migration in a serializable transaction, retrying
// with exponential backoff when the database reports a transient conflict.
func applyMigration(ctx context.Context, conn *pgxpool.Conn, name, contents string) error {
	for attempt := 0; attempt < migrationMaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return err
			}
		}

		err := runMigrationTx(ctx, conn, name, contents)
		if err == nil {
			return nil
		}
		if shouldRetryMigration(err) && attempt < migrationMaxRetries-1 {
			fmt.Printf("transient error applying migration %s (attempt %d/%d): %v\n", name, attempt+1, migrationMaxRetries, err)
			continue
		}
		return err
	}

	return fmt.Errorf("apply migration %s: exceeded max retries (%d)", name, migrationMaxRetries)
}

func runMigrationTx(ctx context.Context, conn *pgxpool.Conn, name, contents string) error {
	tx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin migration transaction for %s: %w", name, err)
	}

	if _, err := tx.Exec(ctx, contents); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("apply migration %s: %w", name, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("record migration %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("commit migration %s: %w", name, err)
	}

	return nil
}

func sleepBackoff(ctx context.Context, attempt int) error {
	backoff := migrationBaseBackoff << (attempt - 1)
	if backoff > migrationMaxBackoff {
		backoff = migrationMaxBackoff
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func shouldRetryMigration(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, pgx.ErrTxClosed) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := retryablePgErrorCodes[pgErr.Code]
		return ok
	}

	return false
}
