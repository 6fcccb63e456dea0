package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const profilePath = "/profile"

// MemberController handles the member directory and the caller's own profile
type MemberController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewMemberController creates a new MemberController
func NewMemberController(profileService services.ProfileService, logger zerolog.Logger) *MemberController {
	return &MemberController{
		profileService: profileService,
		logger:         logger,
	}
}

// Members renders every profile ordered by name
func (c *MemberController) Members(ctx *gin.Context) {
	members, err := c.profileService.ListMembers(ctx.Request.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load members")
	}

	renderPage(ctx, http.StatusOK, pageMembers, "Family Members", "/members", gin.H{
		"Members": members,
	})
}

// Profile renders the caller's profile form
func (c *MemberController) Profile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to load profile")
		renderNotFound(ctx)
		return
	}

	renderPage(ctx, http.StatusOK, pageProfile, "My Profile", profilePath, gin.H{
		"Profile": profile,
	})
}

// UpdateProfile saves the profile form
func (c *MemberController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var form dto.ProfileForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, profilePath)
		return
	}

	if err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &form); err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to update profile")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Error updating profile"))
		redirect(ctx, profilePath)
		return
	}

	notify.Success(ctx, "Profile updated successfully!")
	redirect(ctx, profilePath)
}

// UploadAvatar replaces the caller's profile photo
func (c *MemberController) UploadAvatar(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fh, err := ctx.FormFile("avatar")
	if err != nil {
		notify.Error(ctx, "Please choose a photo to upload")
		redirect(ctx, profilePath)
		return
	}

	if _, err := c.profileService.UpdateAvatar(ctx.Request.Context(), userID, fh); err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to update avatar")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Error uploading photo"))
		redirect(ctx, profilePath)
		return
	}

	notify.Success(ctx, "Profile photo updated!")
	redirect(ctx, profilePath)
}
