package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/app/views"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/notify"
)

var memberID = uuid.New()

type fakeContributions struct {
	created []*dto.ContributionForm
	listErr error
}

func (f *fakeContributions) ListMine(_ context.Context, _ uuid.UUID) ([]*models.Contribution, services.ContributionStats, error) {
	if f.listErr != nil {
		return nil, services.ContributionStats{}, f.listErr
	}
	return []*models.Contribution{{ID: uuid.New(), Amount: 500, CreatedAt: time.Now()}}, services.ContributionStats{Total: 500, Count: 1}, nil
}

func (f *fakeContributions) Create(_ context.Context, userID uuid.UUID, form *dto.ContributionForm) (*models.Contribution, error) {
	f.created = append(f.created, form)
	return &models.Contribution{ID: uuid.New(), UserID: userID, Amount: form.Amount}, nil
}

func (f *fakeContributions) ExportMine(_ context.Context, _ uuid.UUID, w io.Writer) error {
	_, err := w.Write([]byte("xlsx"))
	return err
}

type fakeChat struct {
	messages []*models.ChatMessage
}

func (f *fakeChat) ListMessages(_ context.Context) ([]*models.ChatMessage, error) {
	return f.messages, nil
}

func (f *fakeChat) SendMessage(_ context.Context, senderID uuid.UUID, content string) (*models.ChatMessage, error) {
	m := &models.ChatMessage{ID: uuid.New(), SenderID: senderID, Content: content, CreatedAt: time.Now()}
	f.messages = append(f.messages, m)
	return m, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// signedIn stands in for the session middleware
func signedIn(c *gin.Context) {
	if c.GetHeader("X-Test-User") != "" {
		c.Set(middleware.ContextUserID, memberID)
		c.Set(middleware.ContextViewer, &models.Viewer{Role: models.RoleMember, Profile: &models.Profile{ID: memberID, FullName: "Achieng Otieno"}})
	}
	c.Next()
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	tmpl, err := views.Load(time.UTC)
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(notify.Middleware("test-secret-test-secret-test-secret", false), signedIn)
	return r
}

func do(r *gin.Engine, req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	if signedIn {
		req.Header.Set("X-Test-User", "1")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestContributionCreateRedirectsBack(t *testing.T) {
	fake := &fakeContributions{}
	c := NewContributionController(fake, zerolog.Nop())
	r := newRouter(t)
	r.POST("/contributions", c.Create)

	w := do(r, postForm("/contributions", url.Values{
		"amount":            {"1500"},
		"contribution_type": {"monthly"},
	}), true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contributions", w.Header().Get("Location"))
	require.Len(t, fake.created, 1)
	assert.Equal(t, 1500.0, fake.created[0].Amount)
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"), "toast is carried in the flash cookie")
}

func TestContributionCreateRejectsInvalidAmount(t *testing.T) {
	fake := &fakeContributions{}
	c := NewContributionController(fake, zerolog.Nop())
	r := newRouter(t)
	r.POST("/contributions", c.Create)

	w := do(r, postForm("/contributions", url.Values{
		"amount":            {"0"},
		"contribution_type": {"monthly"},
	}), true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, fake.created)
}

func TestContributionIndexPromptsVisitorsToLogIn(t *testing.T) {
	c := NewContributionController(&fakeContributions{}, zerolog.Nop())
	r := newRouter(t)
	r.GET("/contributions", c.Index)

	w := do(r, httptest.NewRequest(http.MethodGet, "/contributions", nil), false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login to contribute")
}

func TestContributionIndexShowsLoadError(t *testing.T) {
	c := NewContributionController(&fakeContributions{listErr: errors.New("db down")}, zerolog.Nop())
	r := newRouter(t)
	r.GET("/contributions", c.Index)

	w := do(r, httptest.NewRequest(http.MethodGet, "/contributions", nil), true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error loading contributions")
}

func TestContributionExportSendsSpreadsheet(t *testing.T) {
	c := NewContributionController(&fakeContributions{}, zerolog.Nop())
	r := newRouter(t)
	r.GET("/contributions/export.xlsx", c.Export)

	w := do(r, httptest.NewRequest(http.MethodGet, "/contributions/export.xlsx", nil), true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "my-contributions.xlsx")
	assert.Equal(t, "xlsx", w.Body.String())
}

func TestChatSendAnswersJSONToScript(t *testing.T) {
	chat := &fakeChat{}
	c := NewChatController(chat, zerolog.Nop())
	r := newRouter(t)
	r.POST("/chat/messages", c.Send)
	r.GET("/api/chat/messages", c.ListJSON)

	req := postForm("/chat/messages", url.Values{"content": {"Habari family"}})
	req.Header.Set("Accept", "application/json")
	w := do(r, req, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/chat/messages", nil), true)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []dto.ChatMessageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Habari family", body.Data[0].Content)
	assert.Equal(t, memberID.String(), body.Data[0].SenderID)
}

func TestChatSendFormPostRedirects(t *testing.T) {
	c := NewChatController(&fakeChat{}, zerolog.Nop())
	r := newRouter(t)
	r.POST("/chat/messages", c.Send)

	w := do(r, postForm("/chat/messages", url.Values{"content": {"Hello"}}), true)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/chat", w.Header().Get("Location"))
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	r.GET("/api/health", NewHealthController(fakePinger{}, zerolog.Nop()).Health)
	down := NewHealthController(fakePinger{err: errors.New("refused")}, zerolog.Nop())
	r.GET("/api/health/down", down.Health)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/health", nil), false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/health/down", nil), false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBadIDRendersNotFound(t *testing.T) {
	c := NewGalleryController(nil, zerolog.Nop())
	r := newRouter(t)
	r.GET("/gallery/albums/:id", c.ShowAlbum)

	w := do(r, httptest.NewRequest(http.MethodGet, "/gallery/albums/not-a-uuid", nil), false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}
