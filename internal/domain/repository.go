package domain

import "context"

// EventRepository defines persistence for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListActive(ctx context.Context) ([]Event, error)
}

// PhotoRepository defines persistence for photo records.
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByEvent(ctx context.Context, eventID string) ([]Photo, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	Delete(ctx context.Context, id string) error
}
