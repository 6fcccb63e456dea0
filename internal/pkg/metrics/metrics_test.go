package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/events", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/events", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/events", "200")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "familyhub_http_requests_total"))
}

func TestRecordForm(t *testing.T) {
	okBefore := testutil.ToFloat64(FormSubmissions.WithLabelValues("blog", "ok"))
	errBefore := testutil.ToFloat64(FormSubmissions.WithLabelValues("blog", "error"))

	RecordForm("blog", nil)
	RecordForm("blog", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(FormSubmissions.WithLabelValues("blog", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(FormSubmissions.WithLabelValues("blog", "error")))
}
