package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhotoKey builds a collision-resistant storage key for a finished photo:
// photos/{eventId}/{timestamp}_{uuid}.jpg.
func PhotoKey(eventID string, now time.Time) string {
	return fmt.Sprintf("photos/%s/%d_%s.jpg", eventID, now.UnixMilli(), uuid.NewString())
}

// ThumbKey derives the thumbnail key from a full-image key by inserting a
// thumbs/ segment before the filename and a _thumb suffix before the
// extension. Every component that deletes a photo relies on this derivation
// instead of storing the thumbnail path, so the convention must never drift.
func ThumbKey(photoKey string) string {
	dir, file := path.Split(photoKey)
	ext := path.Ext(file)
	return dir + "thumbs/" + strings.TrimSuffix(file, ext) + "_thumb" + ext
}
