package pipeline

import (
	"context"
	"sync"

	"photobooth/internal/domain"
	"photobooth/internal/storage"
)

// cacheControl marks the stored objects as immutable for a year; keys are
// unique per photo so they never need revalidation.
const cacheControl = "public, max-age=31536000"

type materialized struct {
	imageURL     string
	thumbnailURL string
	storagePath  string
}

// materialize downloads the finished asset from its short-lived signed URL,
// derives the thumbnail, and writes both objects. The two writes are
// independent and issued concurrently; the invocation is already deep into
// its wall-clock budget by the time a result exists.
func (p *Pipeline) materialize(ctx context.Context, sampleURL, eventID string) (materialized, error) {
	data, err := p.generator.FetchResult(ctx, sampleURL)
	if err != nil {
		return materialized{}, err
	}

	thumb, err := storage.Thumbnail(data)
	if err != nil {
		return materialized{}, domain.WrapError(err, "thumbnail generation failed")
	}

	imageKey := storage.PhotoKey(eventID, p.now())
	thumbKey := storage.ThumbKey(imageKey)

	objects := []storage.Object{
		{Key: imageKey, Data: data, ContentType: "image/jpeg", CacheControl: cacheControl},
		{Key: thumbKey, Data: thumb, ContentType: "image/jpeg", CacheControl: cacheControl},
	}

	errs := make([]error, len(objects))
	var wg sync.WaitGroup
	for i, obj := range objects {
		wg.Add(1)
		go func(i int, obj storage.Object) {
			defer wg.Done()
			errs[i] = p.store.Put(ctx, obj)
		}(i, obj)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return materialized{}, domain.WrapError(err, "storage write failed")
		}
	}

	return materialized{
		imageURL:     p.store.PublicURL(imageKey),
		thumbnailURL: p.store.PublicURL(thumbKey),
		storagePath:  imageKey,
	}, nil
}
