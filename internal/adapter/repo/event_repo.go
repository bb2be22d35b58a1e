package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"photobooth/internal/domain"
	"photobooth/internal/sqlinline"
)

const uniqueViolation = "23505"

// EventRepositoryPG implements domain.EventRepository using PostgreSQL.
type EventRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewEventRepository constructs a new event repository instance.
func NewEventRepository(pool *pgxpool.Pool) *EventRepositoryPG {
	return &EventRepositoryPG{pool: pool}
}

func (r *EventRepositoryPG) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, sqlinline.QInsertEvent, event.ID, event.Name, event.Slug, event.Date, event.IsActive, event.Theme, event.MaxPhotos)
	if isUniqueViolation(err) {
		return domain.NewError(domain.CodeFailedPrecondition, "an event with this slug already exists")
	}
	return err
}

func (r *EventRepositoryPG) Update(ctx context.Context, event *domain.Event) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateEvent, event.ID, event.Name, event.Slug, event.Date, event.IsActive, event.Theme, event.MaxPhotos)
	if isUniqueViolation(err) {
		return domain.NewError(domain.CodeFailedPrecondition, "an event with this slug already exists")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.CodeNotFound, "event not found")
	}
	return nil
}

func (r *EventRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QDeleteEvent, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.CodeNotFound, "event not found")
	}
	return nil
}

func (r *EventRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, sqlinline.QSelectEventByID, id)
}

func (r *EventRepositoryPG) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.getOne(ctx, sqlinline.QSelectEventBySlug, slug)
}

func (r *EventRepositoryPG) ListActive(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListActiveEvents)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ListEndedBefore returns inactive events whose date is older than the
// cutoff. The retention sweeper uses this to find galleries to purge.
func (r *EventRepositoryPG) ListEndedBefore(ctx context.Context, cutoff time.Time) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListEventsEndedBefore, cutoff)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.Date, &e.IsActive, &e.Theme, &e.MaxPhotos, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepositoryPG) getOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	var e domain.Event
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&e.ID, &e.Name, &e.Slug, &e.Date, &e.IsActive, &e.Theme, &e.MaxPhotos, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewError(domain.CodeNotFound, "event not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ domain.EventRepository = (*EventRepositoryPG)(nil)
