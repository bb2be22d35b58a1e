package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"photobooth/pkg/zip"
)

// maxExportBytes caps how much image data one export may pull into memory.
const maxExportBytes = 256 << 20

// EventExport bundles every photo of an event into a zip download. Photos
// are fetched back from object storage through their public URLs, so the
// handler works the same against S3 and the local file store.
func (a *App) EventExport(w http.ResponseWriter, r *http.Request) {
	if !a.checkAdminRate(w, r) {
		return
	}

	eventID := chi.URLParam(r, "event_id")
	event, err := a.Events.GetByID(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	photos, err := a.Photos.ListByEvent(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	client := a.Fetch
	if client == nil {
		client = http.DefaultClient
	}

	var total int64
	entries := make([]zip.Entry, 0, len(photos))
	for _, photo := range photos {
		data, err := fetchObject(r.Context(), client, photo.ImageURL, maxExportBytes-total)
		if err != nil {
			a.Log.Warn().Err(err).Str("photo_id", photo.ID).Msg("export skipped photo")
			continue
		}
		total += int64(len(data))
		entries = append(entries, zip.Entry{Name: path.Base(photo.StoragePath), Data: data})
	}

	archive, err := zip.Archive(entries)
	if err != nil {
		a.domainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", event.Slug+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func fetchObject(ctx context.Context, client *http.Client, url string, budget int64) ([]byte, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("export size budget exhausted")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, budget))
}
