package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familyhub/portal/internal/app/services"
)

// DashboardController serves the signed-in landing page
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Index renders the dashboard stat cards and upcoming birthdays
func (c *DashboardController) Index(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	data := c.dashboardService.Load(ctx.Request.Context(), userID)
	renderPage(ctx, http.StatusOK, pageDashboard, "Dashboard", "/dashboard", gin.H{
		"Data": data,
	})
}
