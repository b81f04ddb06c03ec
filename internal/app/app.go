package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/streamhub/backend/internal/config"
	"github.com/streamhub/backend/internal/db"
	"github.com/streamhub/backend/internal/handlers"
	"github.com/streamhub/backend/internal/httpserver"
	"github.com/streamhub/backend/internal/middleware"
)

// Run dispatches the requested subcommand: serve, migrate, or seed.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve, migrate, or seed")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "migrate":
		return runMigrations(ctx, args[1:])
	case "seed":
		return runSeed(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps, ingestor, err := buildDependencies(ctx, pool, cfg, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	srv := httpserver.New(cfg.AppPort, middleware.RequestLogger(logger)(mux))

	logger.Info("starting http server", "port", cfg.AppPort)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()

	// Drain queued media jobs before the HTTP listener closes so accepted
	// uploads are not stranded in the pending state.
	if ingestor != nil {
		if err := ingestor.Shutdown(shutdownCtx); err != nil {
			logger.Warn("media ingestor shutdown incomplete", "error", err)
		}
	}

	return srv.Shutdown(shutdownCtx)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
