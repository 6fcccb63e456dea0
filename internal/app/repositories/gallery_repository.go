package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/dberrors"
)

var (
	albumColumns = []string{"id", "title", "description", "created_by", "created_at"}
	photoColumns = []string{"id", "album_id", "image_url", "caption", "uploaded_by", "created_at"}
)

// GalleryRepository handles database operations for albums and photos
type GalleryRepository struct {
	db *pgxpool.Pool
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func scanAlbum(row pgx.Row) (*models.GalleryAlbum, error) {
	var a models.GalleryAlbum
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanPhoto(row pgx.Row) (*models.GalleryPhoto, error) {
	var p models.GalleryPhoto
	if err := row.Scan(&p.ID, &p.AlbumID, &p.ImageURL, &p.Caption, &p.UploadedBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateAlbum inserts an album and fills its id and timestamp
func (r *GalleryRepository) CreateAlbum(ctx context.Context, album *models.GalleryAlbum) error {
	sql, args, err := psql.Insert("gallery_albums").
		Columns("title", "description", "created_by").
		Values(album.Title, album.Description, album.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&album.ID, &album.CreatedAt); err != nil {
		return fmt.Errorf("error creating album: %w", err)
	}
	return nil
}

// ListAlbums returns all albums, newest first
func (r *GalleryRepository) ListAlbums(ctx context.Context) ([]*models.GalleryAlbum, error) {
	sql, args, err := psql.Select(albumColumns...).From("gallery_albums").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var albums []*models.GalleryAlbum
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning album row: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating album rows: %w", err)
	}
	return albums, nil
}

// GetAlbum retrieves an album by its ID
func (r *GalleryRepository) GetAlbum(ctx context.Context, id uuid.UUID) (*models.GalleryAlbum, error) {
	sql, args, err := psql.Select(albumColumns...).From("gallery_albums").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	album, err := scanAlbum(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("album not found")
		}
		return nil, fmt.Errorf("error retrieving album: %w", err)
	}
	return album, nil
}

// CreatePhoto inserts photo metadata and fills its id and timestamp
func (r *GalleryRepository) CreatePhoto(ctx context.Context, photo *models.GalleryPhoto) error {
	sql, args, err := psql.Insert("gallery_photos").
		Columns("album_id", "image_url", "caption", "uploaded_by").
		Values(photo.AlbumID, photo.ImageURL, photo.Caption, photo.UploadedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&photo.ID, &photo.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewResourceNotFoundError("album not found")
		}
		return fmt.Errorf("error creating photo: %w", err)
	}
	return nil
}

// ListPhotos returns the photos of an album, newest first
func (r *GalleryRepository) ListPhotos(ctx context.Context, albumID uuid.UUID) ([]*models.GalleryPhoto, error) {
	sql, args, err := psql.Select(photoColumns...).
		From("gallery_photos").
		Where(squirrel.Eq{"album_id": albumID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var photos []*models.GalleryPhoto
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning photo row: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo rows: %w", err)
	}
	return photos, nil
}

// GetPhoto retrieves a photo by its ID
func (r *GalleryRepository) GetPhoto(ctx context.Context, id uuid.UUID) (*models.GalleryPhoto, error) {
	sql, args, err := psql.Select(photoColumns...).From("gallery_photos").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	photo, err := scanPhoto(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("photo not found")
		}
		return nil, fmt.Errorf("error retrieving photo: %w", err)
	}
	return photo, nil
}

// DeletePhoto removes a photo row
func (r *GalleryRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM gallery_photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting photo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("photo not found")
	}
	return nil
}

// CountPhotos returns the number of photos across all albums
func (r *GalleryRepository) CountPhotos(ctx context.Context) (int, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("gallery_photos"))
}
