package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/pkg/notify"
)

// Context keys set by the session middleware
const (
	ContextUserID = "userID"
	ContextViewer = "viewer"
)

// LoginPath is where unauthenticated page visits are sent
const LoginPath = "/auth"

// SessionAuthenticator verifies a session token
type SessionAuthenticator interface {
	Authenticate(token string) (uuid.UUID, error)
}

// ViewerLoader loads the signed-in caller's profile and role
type ViewerLoader interface {
	LoadViewer(ctx context.Context, userID uuid.UUID) *models.Viewer
}

// SessionCookie describes the cookie that carries the session token
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set writes the session cookie
func (sc SessionCookie) Set(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie
func (sc SessionCookie) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authenticator SessionAuthenticator
	viewers       ViewerLoader
	cookie        SessionCookie
	logger        zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator SessionAuthenticator, viewers ViewerLoader, cookie SessionCookie, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		viewers:       viewers,
		cookie:        cookie,
		logger:        logger,
	}
}

// Cookie returns the session cookie settings
func (m *AuthMiddleware) Cookie() SessionCookie {
	return m.cookie
}

// Session reads the session cookie and puts the user ID in the context.
// A missing session is not an error here; invalid cookies are cleared.
func (m *AuthMiddleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := m.authenticator.Authenticate(token)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Discarding invalid session cookie")
			m.cookie.Clear(c)
			c.Next()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// LoadViewer fetches the caller's profile and role for pages that show them
func (m *AuthMiddleware) LoadViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			c.Set(ContextViewer, m.viewers.LoadViewer(c.Request.Context(), userID))
		}
		c.Next()
	}
}

// RequireSession sends visitors without a session to the login page,
// or answers 401 on JSON endpoints.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); ok {
			c.Next()
			return
		}

		if isAPIRequest(c) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}

// RoleRequired middleware to check if user has required role.
// Pages get a toast and a redirect back; JSON endpoints get 403.
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role, fallbackPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := GetViewer(c)
		if viewer != nil && viewer.Role == requiredRole {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		m.logger.Warn().
			Str("userID", userID.String()).
			Str("requiredRole", string(requiredRole)).
			Str("path", c.Request.URL.Path).
			Msg("Access denied")

		if isAPIRequest(c) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		notify.Error(c, "You don't have permission to do that")
		notify.Save(c)
		c.Redirect(http.StatusSeeOther, fallbackPath)
		c.Abort()
	}
}

// GetUserID returns the signed-in user's ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// GetViewer returns the caller loaded by LoadViewer, or nil
func GetViewer(c *gin.Context) *models.Viewer {
	value, exists := c.Get(ContextViewer)
	if !exists {
		return nil
	}
	viewer, _ := value.(*models.Viewer)
	return viewer
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
