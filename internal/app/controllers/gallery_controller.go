package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const galleryPath = "/gallery"

// GalleryController handles albums and photos
type GalleryController struct {
	galleryService services.GalleryService
	logger         zerolog.Logger
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(galleryService services.GalleryService, logger zerolog.Logger) *GalleryController {
	return &GalleryController{
		galleryService: galleryService,
		logger:         logger,
	}
}

func albumPath(id string) string {
	return galleryPath + "/albums/" + id
}

// Index renders the album list, newest first
func (c *GalleryController) Index(ctx *gin.Context) {
	albums, err := c.galleryService.ListAlbums(ctx.Request.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load albums")
	}

	renderPage(ctx, http.StatusOK, pageGallery, "Gallery", galleryPath, gin.H{
		"Albums": albums,
	})
}

// CreateAlbum adds an album. Admin only.
func (c *GalleryController) CreateAlbum(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var form dto.AlbumForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid album form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, galleryPath)
		return
	}

	album, err := c.galleryService.CreateAlbum(ctx.Request.Context(), middleware.GetViewer(ctx), userID, &form)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create album")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Error creating album"))
		redirect(ctx, galleryPath)
		return
	}

	notify.Success(ctx, "Album created successfully!")
	redirect(ctx, albumPath(album.ID.String()))
}

// ShowAlbum renders one album with its photos
func (c *GalleryController) ShowAlbum(ctx *gin.Context) {
	albumID, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}

	album, photos, err := c.galleryService.GetAlbum(ctx.Request.Context(), albumID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Str("albumID", albumID.String()).Msg("Failed to load album")
		notify.Error(ctx, "Error loading album")
		redirect(ctx, galleryPath)
		return
	}

	renderPage(ctx, http.StatusOK, pageAlbum, album.Title, galleryPath, gin.H{
		"Album":  album,
		"Photos": photos,
	})
}

// UploadPhoto stores an image and adds it to the album
func (c *GalleryController) UploadPhoto(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	albumID, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}
	back := albumPath(albumID.String())

	var form dto.PhotoForm
	if err := ctx.ShouldBind(&form); err != nil {
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, back)
		return
	}

	fh, err := ctx.FormFile("photo")
	if err != nil {
		c.logger.Warn().Err(err).Msg("Photo upload without a file")
		notify.Error(ctx, "Please choose a photo to upload")
		redirect(ctx, back)
		return
	}

	photo, err := c.galleryService.UploadPhoto(ctx.Request.Context(), userID, albumID, form.Caption, fh)
	if err != nil {
		c.logger.Error().Err(err).Str("albumID", albumID.String()).Msg("Failed to upload photo")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Error uploading photo"))
		redirect(ctx, back)
		return
	}

	c.logger.Info().Str("photoID", photo.ID.String()).Str("albumID", albumID.String()).Msg("Photo uploaded")
	notify.Success(ctx, "Photo uploaded successfully!")
	redirect(ctx, back)
}

// DeletePhoto removes a photo the caller uploaded, or any photo for admins
func (c *GalleryController) DeletePhoto(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	photoID, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}

	photo, err := c.galleryService.DeletePhoto(ctx.Request.Context(), middleware.GetViewer(ctx), userID, photoID)
	if err != nil {
		c.logger.Warn().Err(err).Str("photoID", photoID.String()).Msg("Failed to delete photo")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Error deleting photo"))
		redirect(ctx, backTo(ctx, galleryPath))
		return
	}

	notify.Success(ctx, "Photo deleted successfully!")
	redirect(ctx, albumPath(photo.AlbumID.String()))
}
