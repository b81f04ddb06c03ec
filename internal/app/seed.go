package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/streamhub/backend/internal/config"
	"github.com/streamhub/backend/internal/db"
)

// runSeed loads a named SQL seed file and executes it against the configured
// database. "dev" resolves to dev_seed.sql under the seed directory.
func runSeed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected seed name (e.g. dev)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	seedDir := cfg.SeedDir
	if !filepath.IsAbs(seedDir) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		seedDir = filepath.Join(wd, seedDir)
	}

	seedName := args[0]
	if !strings.HasSuffix(seedName, ".sql") {
		seedName += "_seed.sql"
	}

	contents, err := os.ReadFile(filepath.Join(seedDir, seedName))
	if err != nil {
		return fmt.Errorf("read seed %s: %w", seedName, err)
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

	if _, err := conn.Exec(ctx, string(contents)); err != nil {
		return fmt.Errorf("apply seed %s: %w", seedName, err)
	}

	fmt.Printf("applied seed %s\n", seedName)
	return nil
}
