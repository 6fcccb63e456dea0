package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const contributionsPath = "/contributions"

// ContributionController handles the caller's contributions
type ContributionController struct {
	contributionService services.ContributionService
	logger              zerolog.Logger
}

// NewContributionController creates a new ContributionController
func NewContributionController(contributionService services.ContributionService, logger zerolog.Logger) *ContributionController {
	return &ContributionController{
		contributionService: contributionService,
		logger:              logger,
	}
}

// Index renders the caller's contributions. Visitors without a session
// get a prompt to log in instead.
func (c *ContributionController) Index(ctx *gin.Context) {
	data := gin.H{}

	if userID, ok := middleware.GetUserID(ctx); ok {
		contributions, stats, err := c.contributionService.ListMine(ctx.Request.Context(), userID)
		if err != nil {
			c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to load contributions")
			notify.Error(ctx, "Error loading contributions")
		}
		data["Contributions"] = contributions
		data["Stats"] = stats
	}

	renderPage(ctx, http.StatusOK, pageContributions, "Contributions", contributionsPath, data)
}

// Create records a new pending contribution
func (c *ContributionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var form dto.ContributionForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid contribution form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, contributionsPath)
		return
	}

	contribution, err := c.contributionService.Create(ctx.Request.Context(), userID, &form)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to create contribution")
		notify.Error(ctx, "Error creating contribution")
		redirect(ctx, contributionsPath)
		return
	}

	c.logger.Info().
		Str("userID", userID.String()).
		Str("contributionID", contribution.ID.String()).
		Float64("amount", contribution.Amount).
		Msg("Contribution submitted")
	notify.Success(ctx, "Contribution submitted successfully!")
	redirect(ctx, contributionsPath)
}

// Export sends the caller's contributions as a spreadsheet
func (c *ContributionController) Export(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.contributionService.ExportMine(ctx.Request.Context(), userID, &buf); err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to export contributions")
		notify.Error(ctx, "Error exporting contributions")
		redirect(ctx, contributionsPath)
		return
	}

	sendSpreadsheet(ctx, "my-contributions.xlsx", buf.Bytes())
}
