// Package pipeline orchestrates one photo transform: validation, rate
// limiting, submission to the external generation service, bounded polling,
// result materialization and the final record write. Each invocation is an
// isolated unit of work; the only state shared between invocations is the
// rate-limit store.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"photobooth/internal/domain"
	"photobooth/internal/imagegen"
	"photobooth/internal/ratelimit"
	"photobooth/internal/storage"
	"photobooth/internal/styles"
)

// pollDeadline bounds the poll loop. It sits well under the 120s budget the
// caller-facing operation runs with, leaving room for submission and
// materialization.
const pollDeadline = 60 * time.Second

// Generator is the slice of the imagegen client the pipeline submits and
// downloads through.
type Generator interface {
	Submit(ctx context.Context, prompt, imageBase64 string) (imagegen.Job, error)
	FetchResult(ctx context.Context, signedURL string) ([]byte, error)
}

// ResultPoller drives a submitted job to a terminal state.
type ResultPoller interface {
	PollUntilReady(ctx context.Context, pollingURL string, deadline time.Time) (string, error)
}

// Pipeline wires the transform stages together.
type Pipeline struct {
	events    domain.EventRepository
	photos    domain.PhotoRepository
	limiter   *ratelimit.Limiter
	generator Generator
	poller    ResultPoller
	store     storage.ObjectStore
	log       zerolog.Logger
	now       func() time.Time
}

func New(
	events domain.EventRepository,
	photos domain.PhotoRepository,
	limiter *ratelimit.Limiter,
	generator Generator,
	poller ResultPoller,
	store storage.ObjectStore,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		events:    events,
		photos:    photos,
		limiter:   limiter,
		generator: generator,
		poller:    poller,
		store:     store,
		log:       log,
		now:       time.Now,
	}
}

// Transform runs the whole pipeline and returns the public URL of the stored
// image. Every failure carries a taxonomy code; anything unclassified comes
// back as Internal.
//
// Stage order is fixed: validate, event lookup, rate limit, photo quota, then
// the external call. The rate limit runs before the quota because it is the
// cheaper check and guards the store reads behind it.
func (p *Pipeline) Transform(ctx context.Context, req TransformRequest, clientIP string) (string, error) {
	if err := Validate(req); err != nil {
		return "", err
	}

	log := p.log.With().Str("event_id", req.EventID).Str("style_id", req.StyleID).Logger()

	event, err := p.events.GetByID(ctx, req.EventID)
	if err != nil {
		return "", domain.WrapError(err, "event lookup failed")
	}
	if !event.IsActive {
		return "", domain.NewError(domain.CodeFailedPrecondition, "event is not active")
	}

	if err := p.limiter.CheckAndRecord(ctx, ratelimit.TransformKey(event.ID, clientIP), ratelimit.TransformLimit); err != nil {
		return "", err
	}

	if event.MaxPhotos != nil {
		count, err := p.photos.CountByEvent(ctx, event.ID)
		if err != nil {
			return "", domain.WrapError(err, "photo count failed")
		}
		if count >= *event.MaxPhotos {
			return "", domain.NewError(domain.CodeResourceExhausted, "event photo quota reached")
		}
	}

	prompt, _ := styles.Prompt(req.StyleID)

	job, err := p.generator.Submit(ctx, prompt, req.ImageBase64)
	if err != nil {
		log.Error().Err(err).Msg("submit failed")
		return "", domain.WrapError(err, "submit failed")
	}
	log.Info().Str("job_id", job.ID).Msg("job submitted")

	sampleURL, err := p.poller.PollUntilReady(ctx, job.PollingURL, p.now().Add(pollDeadline))
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("poll failed")
		return "", domain.WrapError(err, "poll failed")
	}

	stored, err := p.materialize(ctx, sampleURL, event.ID)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("materialize failed")
		return "", domain.WrapError(err, "materialize failed")
	}

	photo := &domain.Photo{
		EventID:      event.ID,
		StyleID:      req.StyleID,
		ImageURL:     stored.imageURL,
		ThumbnailURL: stored.thumbnailURL,
		StoragePath:  stored.storagePath,
	}
	if err := p.photos.Create(ctx, photo); err != nil {
		return "", domain.WrapError(err, "photo record write failed")
	}

	log.Info().Str("storage_path", stored.storagePath).Msg("transform complete")
	return stored.imageURL, nil
}
