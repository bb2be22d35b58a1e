package domain

import "time"

// Photo is the durable record of one successful transform. It is written
// exactly once, after both objects are stored, and never mutated.
type Photo struct {
	ID           string
	EventID      string
	StyleID      string
	ImageURL     string
	ThumbnailURL string
	StoragePath  string
	CreatedAt    time.Time
}
