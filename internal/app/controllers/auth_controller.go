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

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	cookie      middleware.SessionCookie
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookie middleware.SessionCookie, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Page renders the login and sign-up forms.
// Signed-in visitors go straight to the dashboard.
func (c *AuthController) Page(ctx *gin.Context) {
	if _, ok := middleware.GetUserID(ctx); ok {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	renderPage(ctx, http.StatusOK, pageAuth, "Login", middleware.LoginPath, nil)
}

// Login handles the login form
func (c *AuthController) Login(ctx *gin.Context) {
	var form dto.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, middleware.LoginPath)
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), &form)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", form.Email).Msg("Login failed")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Login failed"))
		redirect(ctx, middleware.LoginPath)
		return
	}

	c.cookie.Set(ctx, session.Token, session.ExpiresAt)
	c.logger.Info().Str("userID", session.UserID.String()).Msg("User logged in")
	notify.Success(ctx, "Welcome back!")
	redirect(ctx, "/dashboard")
}

// SignUp handles the sign-up form. The new member is signed in right away.
func (c *AuthController) SignUp(ctx *gin.Context) {
	var form dto.SignUpForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid sign-up form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, middleware.LoginPath)
		return
	}

	session, err := c.authService.SignUp(ctx.Request.Context(), &form)
	if err != nil {
		c.logger.Error().Err(err).Str("email", form.Email).Msg("Sign-up failed")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Sign up failed"))
		redirect(ctx, middleware.LoginPath)
		return
	}

	c.cookie.Set(ctx, session.Token, session.ExpiresAt)
	c.logger.Info().Str("userID", session.UserID.String()).Msg("Member signed up")
	notify.Success(ctx, "Account created successfully!")
	redirect(ctx, "/dashboard")
}

// Logout clears the session cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	c.cookie.Clear(ctx)
	notify.Success(ctx, "Logged out successfully")
	redirect(ctx, "/")
}
