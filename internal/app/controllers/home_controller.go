package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familyhub/portal/internal/app/services"
)

// HomeController serves the public landing page
type HomeController struct {
	homeService services.HomeService
}

// NewHomeController creates a new HomeController
func NewHomeController(homeService services.HomeService) *HomeController {
	return &HomeController{homeService: homeService}
}

// Index renders the landing page with the family-wide counters
func (c *HomeController) Index(ctx *gin.Context) {
	stats := c.homeService.Stats(ctx.Request.Context())
	renderPage(ctx, http.StatusOK, pageHome, "Welcome", "/", gin.H{
		"Stats": stats,
	})
}
