package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware("test-secret-test-secret-test-secret", false))
	r.POST("/submit", func(c *gin.Context) {
		Success(c, "Contribution submitted successfully!")
		Error(c, "Error creating event")
		Save(c)
		c.Redirect(http.StatusSeeOther, "/page")
	})
	r.GET("/page", func(c *gin.Context) {
		c.JSON(http.StatusOK, Pop(c))
	})
	return r
}

// replay sends back the last cookie set under each name, as a browser would
func replay(req *http.Request, w *httptest.ResponseRecorder) {
	last := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		last[c.Name] = c
	}
	for _, c := range last {
		req.AddCookie(c)
	}
}

func TestToastsSurviveRedirectOnce(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, w.Header().Values("Set-Cookie"), 1, "one flash cookie per response")

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	replay(req, w)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var toasts []Toast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toasts))
	require.Len(t, toasts, 2)
	assert.Equal(t, Toast{Kind: KindSuccess, Title: "Success", Message: "Contribution submitted successfully!"}, toasts[0])
	assert.Equal(t, KindDestructive, toasts[1].Kind)

	// The cleared cookie yields nothing on the next page.
	req = httptest.NewRequest(http.MethodGet, "/page", nil)
	replay(req, w)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "null", w.Body.String())
}
