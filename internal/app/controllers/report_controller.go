package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/pkg/notify"
)

// ReportController serves the family statistics page
type ReportController struct {
	reportService services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// Index renders the report stat cards
func (c *ReportController) Index(ctx *gin.Context) {
	stats := c.reportService.Load(ctx.Request.Context())
	renderPage(ctx, http.StatusOK, pageReports, "Reports", "/reports", gin.H{
		"Stats": stats,
	})
}

// Export streams the report as a spreadsheet
func (c *ReportController) Export(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.reportService.Export(ctx.Request.Context(), &buf); err != nil {
		c.logger.Error().Err(err).Msg("Failed to export report")
		notify.Error(ctx, "Error exporting report")
		redirect(ctx, "/reports")
		return
	}

	sendSpreadsheet(ctx, "family-report.xlsx", buf.Bytes())
}
