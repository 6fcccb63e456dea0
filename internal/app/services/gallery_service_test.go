package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/filestorage"
)

func seededPhoto(t *testing.T, repo *fakeGallery, uploader uuid.UUID) *models.GalleryPhoto {
	t.Helper()
	photo := &models.GalleryPhoto{
		AlbumID:    uuid.New(),
		ImageURL:   "http://portal.test/storage/gallery-photos/" + uploader.String() + "/abc.png",
		UploadedBy: uploader,
	}
	require.NoError(t, repo.CreatePhoto(context.Background(), photo))
	return photo
}

func TestDeletePhotoRejectsOtherMembers(t *testing.T) {
	repo, bucket := newFakeGallery(), newFakeBucket()
	svc := NewGalleryService(repo, bucket, testOptions(), zerolog.Nop())
	photo := seededPhoto(t, repo, uuid.New())

	_, err := svc.DeletePhoto(context.Background(), &models.Viewer{Role: models.RoleMember}, uuid.New(), photo.ID)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "You can only delete your own photos", apperrors.UserMessage(err, "Error deleting photo"))

	assert.Empty(t, bucket.removed)
	_, err = repo.GetPhoto(context.Background(), photo.ID)
	assert.NoError(t, err)
}

func TestDeletePhotoByUploaderOrAdmin(t *testing.T) {
	for name, asAdmin := range map[string]bool{"uploader": false, "admin": true} {
		t.Run(name, func(t *testing.T) {
			repo, bucket := newFakeGallery(), newFakeBucket()
			svc := NewGalleryService(repo, bucket, testOptions(), zerolog.Nop())
			uploader := uuid.New()
			photo := seededPhoto(t, repo, uploader)

			caller, viewer := uploader, &models.Viewer{Role: models.RoleMember}
			if asAdmin {
				caller, viewer = uuid.New(), &models.Viewer{Role: models.RoleAdmin}
			}

			deleted, err := svc.DeletePhoto(context.Background(), viewer, caller, photo.ID)
			require.NoError(t, err)
			assert.Equal(t, photo.AlbumID, deleted.AlbumID)
			assert.Equal(t, []string{"gallery-photos/" + uploader.String() + "/abc.png"}, bucket.removed)

			_, err = repo.GetPhoto(context.Background(), photo.ID)
			assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		})
	}
}

func TestDeletePhotoIgnoresStorageFailure(t *testing.T) {
	repo, bucket := newFakeGallery(), newFakeBucket()
	bucket.removeErr = errBackend
	svc := NewGalleryService(repo, bucket, testOptions(), zerolog.Nop())
	uploader := uuid.New()
	photo := seededPhoto(t, repo, uploader)

	_, err := svc.DeletePhoto(context.Background(), &models.Viewer{Role: models.RoleMember}, uploader, photo.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.photos)
}

func TestUploadPhotoStoresThenRecords(t *testing.T) {
	repo, bucket := newFakeGallery(), newFakeBucket()
	svc := NewGalleryService(repo, bucket, testOptions(), zerolog.Nop())
	userID, albumID := uuid.New(), uuid.New()

	photo, err := svc.UploadPhoto(context.Background(), userID, albumID, "Reunion 2026", upload(t, "reunion.png", pngBytes(t)))
	require.NoError(t, err)

	prefix := "http://portal.test/storage/" + filestorage.BucketGalleryPhotos + "/" + userID.String() + "/"
	assert.True(t, strings.HasPrefix(photo.ImageURL, prefix), photo.ImageURL)
	assert.True(t, strings.HasSuffix(photo.ImageURL, ".png"))
	assert.Equal(t, "Reunion 2026", *photo.Caption)
	assert.Len(t, bucket.objects, 1)
	assert.Len(t, repo.photos, 1)
}

func TestUploadPhotoRejectsNonImages(t *testing.T) {
	repo, bucket := newFakeGallery(), newFakeBucket()
	svc := NewGalleryService(repo, bucket, testOptions(), zerolog.Nop())

	_, err := svc.UploadPhoto(context.Background(), uuid.New(), uuid.New(), "", upload(t, "notes.png", []byte("not an image")))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFile)
	assert.Empty(t, bucket.objects)
	assert.Empty(t, repo.photos)
}

func TestCreateAlbumRequiresAdmin(t *testing.T) {
	repo := newFakeGallery()
	svc := NewGalleryService(repo, newFakeBucket(), testOptions(), zerolog.Nop())
	form := &dto.AlbumForm{Title: "Christmas 2025"}

	_, err := svc.CreateAlbum(context.Background(), &models.Viewer{Role: models.RoleMember}, uuid.New(), form)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	album, err := svc.CreateAlbum(context.Background(), &models.Viewer{Role: models.RoleAdmin}, uuid.New(), form)
	require.NoError(t, err)
	assert.Nil(t, album.Description)
	assert.Len(t, repo.albums, 1)
}
