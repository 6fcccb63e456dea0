package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const cookieName = "test_session"

type fakeAuthenticator map[string]uuid.UUID

func (f fakeAuthenticator) Authenticate(token string) (uuid.UUID, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return uuid.Nil, apperrors.ErrTokenInvalid
}

type fakeViewers map[uuid.UUID]models.Role

func (f fakeViewers) LoadViewer(_ context.Context, userID uuid.UUID) *models.Viewer {
	return &models.Viewer{Role: f[userID], Profile: &models.Profile{ID: userID}}
}

var (
	memberID = uuid.New()
	adminID  = uuid.New()
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(
		fakeAuthenticator{"member-token": memberID, "admin-token": adminID},
		fakeViewers{memberID: models.RoleMember, adminID: models.RoleAdmin},
		SessionCookie{Name: cookieName},
		zerolog.Nop(),
	)

	r := gin.New()
	r.Use(notify.Middleware("test-secret-test-secret-test-secret", false), m.Session(), m.LoadViewer())

	r.GET("/", func(c *gin.Context) {
		_, ok := GetUserID(c)
		c.String(http.StatusOK, "signed-in=%t", ok)
	})

	authed := r.Group("/", m.RequireSession())
	authed.GET("/dashboard", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.String(http.StatusOK, userID.String())
	})
	authed.GET("/api/chat/messages", func(c *gin.Context) { c.Status(http.StatusOK) })
	authed.POST("/events", m.RoleRequired(models.RoleAdmin, "/events"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSessionRedirectsPagesToLogin(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestRequireSessionAnswers401OnAPI(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/api/chat/messages", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestValidSessionReachesPage(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/dashboard", "member-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, memberID.String(), w.Body.String())
}

func TestInvalidCookieIsClearedAndTreatedAsAnonymous(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/", "forged")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed-in=false", w.Body.String())

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestRoleRequired(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodPost, "/events", "member-token")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/events", w.Header().Get("Location"))

	w = serve(r, http.MethodPost, "/events", "admin-token")
	assert.Equal(t, http.StatusCreated, w.Code)
}

type signUp struct {
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
}

func TestValidationMessageUsesFormNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	form := url.Values{"email": {"not-an-email"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var body signUp
	err := c.ShouldBind(&body)
	require.Error(t, err)
	assert.Equal(t, "Full name is required", ValidationMessage(err))
}

func TestPageErrorMessage(t *testing.T) {
	assert.Equal(t, "Error creating event", PageErrorMessage(assert.AnError, "Error creating event"))
	assert.Equal(t, "Only admins can create events",
		PageErrorMessage(apperrors.NewForbiddenError("Only admins can create events"), "Error creating event"))
	assert.Equal(t, "Invalid email or password", PageErrorMessage(apperrors.ErrInvalidCredentials, "Login failed"))
}

type profile struct {
	Phone string `form:"phone" binding:"omitempty,phone"`
}

func TestValidationMessageForCustomRules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	form := url.Values{"phone": {"call me"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var body profile
	err := c.ShouldBind(&body)
	require.Error(t, err)
	assert.Equal(t, "Phone must be a valid phone number", ValidationMessage(err))
}

func TestBlankTitlesAreRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	bind := func(values url.Values, target interface{}) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		return c.ShouldBind(target)
	}

	var event dto.EventForm
	err := bind(url.Values{"title": {"   "}, "event_date": {"2026-12-24T18:00"}}, &event)
	require.Error(t, err)
	assert.Contains(t, ValidationMessage(err), "cannot be blank")

	var album dto.AlbumForm
	err = bind(url.Values{"title": {"\t  "}}, &album)
	require.Error(t, err)
	assert.Contains(t, ValidationMessage(err), "cannot be blank")

	require.NoError(t, bind(url.Values{"title": {"Christmas"}}, &album))
}
