package domain

import "time"

// Event is a photo-booth deployment: one kiosk installation at one occasion.
// MaxPhotos, when set, caps how many photos the event may accumulate.
type Event struct {
	ID        string
	Name      string
	Slug      string
	Date      time.Time
	IsActive  bool
	Theme     string
	MaxPhotos *int
	CreatedAt time.Time
}
