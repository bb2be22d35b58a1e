package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"photobooth/internal/domain"
	"photobooth/internal/storage"
)

const (
	// maxBulkDelete bounds one bulk request; callers split larger sets.
	maxBulkDelete = 100
	// bulkDeleteWorkers is how many photos we tear down in parallel.
	bulkDeleteWorkers = 5
)

type photoResponse struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	StyleID      string    `json:"styleId"`
	ImageURL     string    `json:"imageUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toPhotoResponse(p *domain.Photo) photoResponse {
	return photoResponse{
		ID:           p.ID,
		EventID:      p.EventID,
		StyleID:      p.StyleID,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		CreatedAt:    p.CreatedAt,
	}
}

// EventPhotos lists an event's gallery, newest first.
func (a *App) EventPhotos(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")
	if _, err := a.Events.GetByID(r.Context(), eventID); err != nil {
		a.domainError(w, err)
		return
	}
	photos, err := a.Photos.ListByEvent(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]photoResponse, 0, len(photos))
	for i := range photos {
		items = append(items, toPhotoResponse(&photos[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// deletePhoto removes the database record first, then the stored objects.
// Object deletion is best effort: an orphaned blob is preferable to a
// gallery entry pointing at nothing.
func (a *App) deletePhoto(ctx context.Context, photoID string) error {
	photo, err := a.Photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if err := a.Photos.Delete(ctx, photoID); err != nil {
		return err
	}
	for _, key := range []string{photo.StoragePath, storage.ThumbKey(photo.StoragePath)} {
		if err := a.Store.Delete(ctx, key); err != nil {
			a.Log.Warn().Err(err).Str("key", key).Msg("photo object cleanup failed")
		}
	}
	return nil
}

func (a *App) PhotoDelete(w http.ResponseWriter, r *http.Request) {
	if !a.checkAdminRate(w, r) {
		return
	}
	if err := a.deletePhoto(r.Context(), chi.URLParam(r, "photo_id")); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	PhotoIDs []string `json:"photoIds"`
}

type bulkDeleteResponse struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// PhotosBulkDelete removes up to maxBulkDelete photos in one call. Failures
// are counted rather than aborting the batch, so a single missing record
// does not strand the rest of a cleanup.
func (a *App) PhotosBulkDelete(w http.ResponseWriter, r *http.Request) {
	if !a.checkAdminRate(w, r) {
		return
	}

	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_argument", "invalid payload")
		return
	}
	if len(req.PhotoIDs) == 0 {
		a.error(w, http.StatusBadRequest, "invalid_argument", "photoIds is required")
		return
	}
	if len(req.PhotoIDs) > maxBulkDelete {
		a.error(w, http.StatusBadRequest, "invalid_argument", "too many photoIds in one request")
		return
	}

	var (
		mu      sync.Mutex
		deleted int
		failed  int
	)
	sem := make(chan struct{}, bulkDeleteWorkers)
	var wg sync.WaitGroup
	for _, id := range req.PhotoIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(photoID string) {
			defer wg.Done()
			defer func() { <-sem }()
			err := a.deletePhoto(r.Context(), photoID)
			mu.Lock()
			if err != nil {
				failed++
				a.Log.Warn().Err(err).Str("photo_id", photoID).Msg("bulk delete entry failed")
			} else {
				deleted++
			}
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	a.json(w, http.StatusOK, bulkDeleteResponse{Deleted: deleted, Failed: failed})
}
