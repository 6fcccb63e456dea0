package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/filestorage"
	"github.com/familyhub/portal/internal/pkg/helpers"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// ProfileService covers the caller's own profile and the member directory
type ProfileService interface {
	LoadViewer(ctx context.Context, userID uuid.UUID) *models.Viewer
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	ListMembers(ctx context.Context) ([]*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, form *dto.ProfileForm) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (string, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profileRepo repositories.IProfileRepository
	userRepo    repositories.IUserRepository
	storage     filestorage.Bucket
	opts        Options
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo repositories.IProfileRepository,
	userRepo repositories.IUserRepository,
	storage filestorage.Bucket,
	opts Options,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		storage:     storage,
		opts:        opts,
		logger:      logger,
	}
}

// LoadViewer fetches the caller's profile and role together.
// A failed profile read leaves Profile nil; a failed role read means member.
func (s *profileServiceImpl) LoadViewer(ctx context.Context, userID uuid.UUID) *models.Viewer {
	viewer := &models.Viewer{Role: models.RoleMember}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.profileRepo.GetByID(gctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to load viewer profile")
			return nil
		}
		viewer.Profile = profile
		return nil
	})
	g.Go(func() error {
		role, err := s.userRepo.GetRole(gctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to load viewer role")
			return nil
		}
		viewer.Role = role
		return nil
	})
	_ = g.Wait()

	return viewer
}

// GetProfile retrieves a profile by user ID
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// ListMembers returns every profile ordered by full name
func (s *profileServiceImpl) ListMembers(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// UpdateProfile applies the caller's edits in a single update
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, form *dto.ProfileForm) (err error) {
	defer func() { metrics.RecordForm("profile", err) }()

	birthday, err := helpers.ParseOptionalDate(form.Birthday)
	if err != nil {
		return apperrors.NewValidationError("Birthday must be a valid date")
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	profile.FullName = strings.TrimSpace(form.FullName)
	profile.Bio = optional(form.Bio)
	profile.Phone = optional(form.Phone)
	profile.Location = optional(form.Location)
	profile.Birthday = birthday

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}

	s.logger.Info().Str("userID", userID.String()).Msg("Profile updated")
	return nil
}

// UpdateAvatar stores a new avatar image and points the profile at it.
// The previous avatar object is removed once the profile is updated.
func (s *profileServiceImpl) UpdateAvatar(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (url string, err error) {
	defer func() { metrics.RecordForm("avatar", err) }()

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err = filestorage.StoreImage(ctx, s.storage, filestorage.BucketAvatars, userID, fh, s.opts.MaxUploadBytes)
	if err != nil {
		return "", fmt.Errorf("error uploading avatar: %w", err)
	}

	if err := s.profileRepo.UpdateAvatar(ctx, userID, url); err != nil {
		// Clean up the uploaded file if the profile update fails
		_ = s.storage.Remove(ctx, filestorage.BucketAvatars, filestorage.ObjectPathFromURL(url))
		return "", err
	}

	if profile.AvatarURL != nil && *profile.AvatarURL != "" {
		if err := s.storage.Remove(ctx, filestorage.BucketAvatars, filestorage.ObjectPathFromURL(*profile.AvatarURL)); err != nil {
			s.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to remove previous avatar")
		}
	}

	return url, nil
}

// optional maps a blank form value to NULL
func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
