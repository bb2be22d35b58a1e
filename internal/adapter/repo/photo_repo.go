package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photobooth/internal/domain"
	"photobooth/internal/sqlinline"
)

// PhotoRepositoryPG implements domain.PhotoRepository using PostgreSQL.
type PhotoRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository constructs a new photo repository instance.
func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepositoryPG {
	return &PhotoRepositoryPG{pool: pool}
}

func (r *PhotoRepositoryPG) Create(ctx context.Context, photo *domain.Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, sqlinline.QInsertPhoto, photo.ID, photo.EventID, photo.StyleID, photo.ImageURL, photo.ThumbnailURL, photo.StoragePath)
	return err
}

func (r *PhotoRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	var p domain.Photo
	err := r.pool.QueryRow(ctx, sqlinline.QSelectPhotoByID, id).Scan(&p.ID, &p.EventID, &p.StyleID, &p.ImageURL, &p.ThumbnailURL, &p.StoragePath, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewError(domain.CodeNotFound, "photo not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PhotoRepositoryPG) ListByEvent(ctx context.Context, eventID string) ([]domain.Photo, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListPhotosByEvent, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.EventID, &p.StyleID, &p.ImageURL, &p.ThumbnailURL, &p.StoragePath, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepositoryPG) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, sqlinline.QCountPhotosByEvent, eventID).Scan(&count)
	return count, err
}

func (r *PhotoRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QDeletePhoto, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.CodeNotFound, "photo not found")
	}
	return nil
}

var _ domain.PhotoRepository = (*PhotoRepositoryPG)(nil)
