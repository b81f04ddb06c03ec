package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/streamhub/backend/internal/logging"
)

// AssetStorage persists a stream under the provided key and returns its
// durable public location.
type AssetStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// AssetUpdater persists ingestion status updates for uploaded videos.
type AssetUpdater interface {
	MarkAssetReady(ctx context.Context, videoID, videoURL, thumbnailURL string, duration float64) error
	MarkAssetFailed(ctx context.Context, videoID string) error
}

// IngestorConfig controls the concurrency characteristics of the ingestor.
type IngestorConfig struct {
	QueueSize int
	Workers   int
}

// Job describes one pending ingestion: a staged video file plus thumbnail
// belonging to a freshly published video record.
type Job struct {
	VideoID       string
	VideoPath     string
	ThumbnailPath string
}

// Ingestor asynchronously probes staged uploads, moves them to durable
// storage, and flips the owning video record to ready or failed.
type Ingestor struct {
	prober  Prober
	storage AssetStorage
	updater AssetUpdater
	logger  *slog.Logger

	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

var errIngestorClosed = errors.New("media ingestor closed")

// NewIngestor constructs a background worker pool that persists uploaded assets.
func NewIngestor(prober Prober, storage AssetStorage, updater AssetUpdater, cfg IngestorConfig, logger *slog.Logger) *Ingestor {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	ing := &Ingestor{
		prober:  prober,
		storage: storage,
		updater: updater,
		logger:  logger,
		jobs:    make(chan Job, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	ing.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go ing.worker()
	}

	return ing
}

// Enqueue schedules asset persistence for the supplied job.
func (i *Ingestor) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.ctx.Done():
		return errIngestorClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.ctx.Done():
		return errIngestorClosed
	case i.jobs <- job:
		return nil
	}
}

// Shutdown waits for the worker pool to drain outstanding jobs.
func (i *Ingestor) Shutdown(ctx context.Context) error {
	i.once.Do(func() {
		i.cancel()
		close(i.jobs)
	})

	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// worker drains the queue until it is closed and empty, so jobs accepted
// before Shutdown are still processed.
func (i *Ingestor) worker() {
	defer i.wg.Done()

	for job := range i.jobs {
		i.handleJob(job)
	}
}

func (i *Ingestor) handleJob(job Job) {
	if i.prober == nil || i.storage == nil || i.updater == nil {
		i.logger.Error("media ingestor missing dependencies", "hasProber", i.prober != nil, "hasStorage", i.storage != nil, "hasUpdater", i.updater != nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctx, span := logging.StartSpan(logging.WithLogger(ctx, i.logger), "media.ingest")
	defer span.End()

	probe, err := i.prober.Probe(ctx, job.VideoPath)
	if err != nil {
		i.logger.Error("probe staged video", "videoId", job.VideoID, "path", job.VideoPath, "error", err)
		i.recordFailure(job.VideoID)
		return
	}

	videoURL, err := i.upload(ctx, job.VideoID, "video", job.VideoPath)
	if err != nil {
		i.logger.Error("upload video asset", "videoId", job.VideoID, "error", err)
		i.recordFailure(job.VideoID)
		return
	}

	var thumbnailURL string
	if job.ThumbnailPath != "" {
		thumbnailURL, err = i.upload(ctx, job.VideoID, "thumbnail", job.ThumbnailPath)
		if err != nil {
			i.logger.Error("upload thumbnail asset", "videoId", job.VideoID, "error", err)
			i.recordFailure(job.VideoID)
			return
		}
	}

	if err := i.recordSuccess(job.VideoID, videoURL, thumbnailURL, probe.Duration); err != nil {
		i.logger.Error("mark asset ready", "videoId", job.VideoID, "error", err)
		i.recordFailure(job.VideoID)
		return
	}

	// Staged files are disposable once the durable copies exist.
	for _, staged := range []string{job.VideoPath, job.ThumbnailPath} {
		if err := os.Remove(staged); err != nil && !errors.Is(err, os.ErrNotExist) {
			i.logger.Warn("remove staged file", "path", staged, "error", err)
		}
	}
}

func (i *Ingestor) upload(ctx context.Context, videoID, kind, staged string) (string, error) {
	f, err := os.Open(staged)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	key := path.Join(videoID, kind+filepath.Ext(staged))
	location, err := i.storage.Save(ctx, key, f)
	if err != nil {
		return "", fmt.Errorf("save asset %s: %w", key, err)
	}

	return location, nil
}

func (i *Ingestor) recordFailure(videoID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := i.updater.MarkAssetFailed(ctx, videoID); err != nil {
		i.logger.Error("record asset failure", "videoId", videoID, "error", err)
	}
}

func (i *Ingestor) recordSuccess(videoID, videoURL, thumbnailURL string, duration float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return i.updater.MarkAssetReady(ctx, videoID, videoURL, thumbnailURL, duration)
}
