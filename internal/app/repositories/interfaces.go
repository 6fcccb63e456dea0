package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/familyhub/portal/internal/app/models"
)

// IUserRepository covers accounts, credentials and roles
type IUserRepository interface {
	CreateAccount(ctx context.Context, account *models.NewAccount) (*models.Profile, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*models.AuthUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetRole(ctx context.Context, userID uuid.UUID) (models.Role, error)
	SetRole(ctx context.Context, userID uuid.UUID, role models.Role) error
}

// IProfileRepository covers the profiles table
type IProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	ListWithBirthday(ctx context.Context) ([]*models.Profile, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
}

// IContributionRepository covers the contributions table
type IContributionRepository interface {
	Create(ctx context.Context, contribution *models.Contribution) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Contribution, error)
	ListAll(ctx context.Context) ([]*models.Contribution, error)
}

// IEventRepository covers events and their RSVPs
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	ListWithRSVPCounts(ctx context.Context) ([]*models.Event, error)
	CountFrom(ctx context.Context, from time.Time) (int, error)
	ListDates(ctx context.Context) ([]time.Time, error)
	CreateRSVP(ctx context.Context, rsvp *models.EventRSVP) error
}

// IBlogRepository covers the blog_posts table
type IBlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	ListPublished(ctx context.Context) ([]*models.BlogPost, error)
	Count(ctx context.Context) (int, error)
}

// IGalleryRepository covers albums and photos
type IGalleryRepository interface {
	CreateAlbum(ctx context.Context, album *models.GalleryAlbum) error
	ListAlbums(ctx context.Context) ([]*models.GalleryAlbum, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (*models.GalleryAlbum, error)
	CreatePhoto(ctx context.Context, photo *models.GalleryPhoto) error
	ListPhotos(ctx context.Context, albumID uuid.UUID) ([]*models.GalleryPhoto, error)
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.GalleryPhoto, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
	CountPhotos(ctx context.Context) (int, error)
}

// IChatRepository covers the chat_messages table
type IChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	List(ctx context.Context) ([]*models.ChatMessage, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
