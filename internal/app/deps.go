package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/streamhub/backend/internal/auth"
	"github.com/streamhub/backend/internal/config"
	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/handlers"
	"github.com/streamhub/backend/internal/media"
	"github.com/streamhub/backend/internal/middleware"
	"github.com/streamhub/backend/internal/repositories"
	"github.com/streamhub/backend/internal/storage"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The returned ingestor is nil when no object store is configured;
// videos then stay in the pending state until one is.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, *media.Ingestor, error) {
	sessionStore := repositories.NewPostgresSessionStore(pool)
	videoRepo := repositories.NewPostgresVideoRepository(pool)

	// Best effort; expired sessions are rejected on use either way.
	if purged, err := sessionStore.PurgeExpired(ctx, time.Now()); err != nil {
		logger.Warn("purge expired sessions", "error", err)
	} else if purged > 0 {
		logger.Info("purged expired sessions", "count", purged)
	}

	var ingestor *media.Ingestor
	if cfg.ObjectStore.Bucket != "" {
		assetStore, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, nil, err
		}

		prober := media.NewCachingProber(
			media.NewFFProbeProber(cfg.FFProbePath, cfg.FFProbeTimeout),
			cfg.ProbeCacheTTL,
		)

		ingestor = media.NewIngestor(prober, assetStore, videoRepo, media.IngestorConfig{
			Workers:   cfg.IngestWorkers,
			QueueSize: cfg.IngestQueue,
		}, logger)
	}

	deps := handlers.Dependencies{
		Users:         repositories.NewPostgresUserRepository(pool),
		Sessions:      auth.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, sessionStore),
		Videos:        videoRepo,
		Comments:      repositories.NewPostgresCommentRepository(pool),
		Tweets:        repositories.NewPostgresTweetRepository(pool),
		Playlists:     repositories.NewPostgresPlaylistRepository(pool),
		Likes:         repositories.NewPostgresLikeRepository(pool),
		Subscriptions: repositories.NewPostgresSubscriptionRepository(pool),
		Stats:         repositories.NewPostgresStatsRepository(pool),
		AuthLimiter:   middleware.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute),
	}
	if ingestor != nil {
		deps.Ingestor = ingestor
	}

	return deps, ingestor, nil
}
