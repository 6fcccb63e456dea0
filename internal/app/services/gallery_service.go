package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/filestorage"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// ErrNotPhotoOwner rejects deleting someone else's photo
var ErrNotPhotoOwner = apperrors.NewForbiddenError("You can only delete your own photos")

// GalleryService handles albums and photos
type GalleryService interface {
	ListAlbums(ctx context.Context) ([]*models.GalleryAlbum, error)
	CreateAlbum(ctx context.Context, viewer *models.Viewer, userID uuid.UUID, form *dto.AlbumForm) (*models.GalleryAlbum, error)
	GetAlbum(ctx context.Context, albumID uuid.UUID) (*models.GalleryAlbum, []*models.GalleryPhoto, error)
	UploadPhoto(ctx context.Context, userID, albumID uuid.UUID, caption string, fh *multipart.FileHeader) (*models.GalleryPhoto, error)
	DeletePhoto(ctx context.Context, viewer *models.Viewer, userID, photoID uuid.UUID) (*models.GalleryPhoto, error)
}

type galleryServiceImpl struct {
	galleryRepo repositories.IGalleryRepository
	storage     filestorage.Bucket
	opts        Options
	logger      zerolog.Logger
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(galleryRepo repositories.IGalleryRepository, storage filestorage.Bucket, opts Options, logger zerolog.Logger) GalleryService {
	return &galleryServiceImpl{
		galleryRepo: galleryRepo,
		storage:     storage,
		opts:        opts,
		logger:      logger,
	}
}

// ListAlbums returns albums newest first
func (s *galleryServiceImpl) ListAlbums(ctx context.Context) ([]*models.GalleryAlbum, error) {
	return s.galleryRepo.ListAlbums(ctx)
}

// CreateAlbum stores a new album; only admins may create albums
func (s *galleryServiceImpl) CreateAlbum(ctx context.Context, viewer *models.Viewer, userID uuid.UUID, form *dto.AlbumForm) (album *models.GalleryAlbum, err error) {
	defer func() { metrics.RecordForm("album", err) }()

	if !viewer.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can create albums")
	}

	album = &models.GalleryAlbum{
		Title:       strings.TrimSpace(form.Title),
		Description: optional(form.Description),
		CreatedBy:   userID,
	}
	if err := s.galleryRepo.CreateAlbum(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

// GetAlbum returns an album with its photos newest first
func (s *galleryServiceImpl) GetAlbum(ctx context.Context, albumID uuid.UUID) (*models.GalleryAlbum, []*models.GalleryPhoto, error) {
	album, err := s.galleryRepo.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, nil, err
	}

	photos, err := s.galleryRepo.ListPhotos(ctx, albumID)
	if err != nil {
		return album, nil, err
	}
	return album, photos, nil
}

// UploadPhoto stores the image then records it. A stored file is kept when the insert fails.
func (s *galleryServiceImpl) UploadPhoto(ctx context.Context, userID, albumID uuid.UUID, caption string, fh *multipart.FileHeader) (photo *models.GalleryPhoto, err error) {
	defer func() { metrics.RecordForm("photo", err) }()

	url, err := filestorage.StoreImage(ctx, s.storage, filestorage.BucketGalleryPhotos, userID, fh, s.opts.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("error uploading photo: %w", err)
	}

	photo = &models.GalleryPhoto{
		AlbumID:    albumID,
		ImageURL:   url,
		Caption:    optional(caption),
		UploadedBy: userID,
	}
	if err := s.galleryRepo.CreatePhoto(ctx, photo); err != nil {
		s.logger.Warn().Err(err).Str("imageURL", url).Msg("Photo stored but not recorded")
		return nil, err
	}

	s.logger.Info().Str("photoID", photo.ID.String()).Str("userID", userID.String()).Msg("Photo uploaded")
	return photo, nil
}

// DeletePhoto removes a photo the caller uploaded, or any photo for admins.
// Removing the stored object is best effort; the row is deleted regardless.
func (s *galleryServiceImpl) DeletePhoto(ctx context.Context, viewer *models.Viewer, userID, photoID uuid.UUID) (photo *models.GalleryPhoto, err error) {
	defer func() { metrics.RecordForm("photo_delete", err) }()

	photo, err = s.galleryRepo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}

	role := models.RoleMember
	if viewer != nil {
		role = viewer.Role
	}
	if !photo.CanBeDeletedBy(userID, role) {
		return photo, ErrNotPhotoOwner
	}

	if objectPath := filestorage.ObjectPathFromURL(photo.ImageURL); objectPath != "" {
		if err := s.storage.Remove(ctx, filestorage.BucketGalleryPhotos, objectPath); err != nil {
			s.logger.Warn().Err(err).Str("photoID", photoID.String()).Msg("Failed to remove stored photo")
		}
	}

	if err := s.galleryRepo.DeletePhoto(ctx, photoID); err != nil {
		return photo, err
	}

	s.logger.Info().Str("photoID", photoID.String()).Str("userID", userID.String()).Msg("Photo deleted")
	return photo, nil
}
