package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryAlbum groups photos
type GalleryAlbum struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedBy   uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// GalleryPhoto is an uploaded image inside an album
type GalleryPhoto struct {
	ID         uuid.UUID `json:"id" db:"id"`
	AlbumID    uuid.UUID `json:"albumId" db:"album_id"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	Caption    *string   `json:"caption,omitempty" db:"caption"`
	UploadedBy uuid.UUID `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CanBeDeletedBy reports whether the viewer may delete the photo: its uploader or an admin
func (p *GalleryPhoto) CanBeDeletedBy(userID uuid.UUID, role Role) bool {
	return role == RoleAdmin || p.UploadedBy == userID
}
