package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"photobooth/internal/adapter/repo"
	"photobooth/internal/infra"
	"photobooth/internal/storage"
)

const (
	defaultRetentionDays = 30
	defaultSweepInterval = time.Hour
)

// The retention sweeper purges photos of events that have been deactivated
// and whose date has passed the retention window. It runs alongside the API
// against the same database and object store.
type sweeper struct {
	events    *repo.EventRepositoryPG
	photos    *repo.PhotoRepositoryPG
	store     storage.ObjectStore
	logger    zerolog.Logger
	retention time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	var store storage.ObjectStore
	if cfg.S3Bucket != "" {
		store, err = storage.NewS3Store(ctx, storage.S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			BaseEndpoint:  cfg.S3BaseEndpoint,
			PublicBaseURL: cfg.StorageBaseURL,
		})
	} else {
		store, err = storage.NewFileStore(cfg.LocalStoragePath, cfg.StorageBaseURL)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	s := &sweeper{
		events:    repo.NewEventRepository(pool),
		photos:    repo.NewPhotoRepository(pool),
		store:     store,
		logger:    logger,
		retention: retentionWindow(),
	}

	interval := sweepInterval()
	logger.Info().
		Dur("interval", interval).
		Dur("retention", s.retention).
		Msg("retention sweeper started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("retention sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *sweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.retention)
	events, err := s.events.ListEndedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("sweep: listing expired events failed")
		return
	}
	for _, event := range events {
		purged, failed := s.purgeEvent(ctx, event.ID)
		if purged > 0 || failed > 0 {
			s.logger.Info().
				Str("event_id", event.ID).
				Str("slug", event.Slug).
				Int("purged", purged).
				Int("failed", failed).
				Msg("sweep: event gallery purged")
		}
	}
}

func (s *sweeper) purgeEvent(ctx context.Context, eventID string) (purged, failed int) {
	photos, err := s.photos.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error().Err(err).Str("event_id", eventID).Msg("sweep: listing photos failed")
		return 0, 0
	}
	for _, photo := range photos {
		if err := s.photos.Delete(ctx, photo.ID); err != nil {
			s.logger.Warn().Err(err).Str("photo_id", photo.ID).Msg("sweep: record delete failed")
			failed++
			continue
		}
		for _, key := range []string{photo.StoragePath, storage.ThumbKey(photo.StoragePath)} {
			if err := s.store.Delete(ctx, key); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("sweep: object delete failed")
			}
		}
		purged++
	}
	return purged, failed
}

func retentionWindow() time.Duration {
	days := defaultRetentionDays
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

func sweepInterval() time.Duration {
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Minute
		}
	}
	return defaultSweepInterval
}
