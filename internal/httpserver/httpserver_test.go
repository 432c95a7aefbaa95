package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/metrics"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	"github.com/OFTGNOV/Sa-helper-bot/internal/middleware"
)

type stubChat struct{}

func (stubChat) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	r.GET("/api/v1/chat/boom", func(*gin.Context) { panic("boom") })
	r.POST("/api/v1/chat/message", mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })
}

func newServer(t *testing.T, ready func() error) *HTTPServer {
	t.Helper()
	srv, err := New(Config{Addr: ":0", Mode: gin.TestMode, Chat: stubChat{}, Middleware: middleware.New("", nil), Ready: ready})
	require.NoError(t, err)
	return srv
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNew_Validates(t *testing.T) {
	_, err := New(Config{Mode: gin.TestMode, Chat: stubChat{}})
	assert.Error(t, err)
	_, err = New(Config{Addr: ":8080", Mode: gin.TestMode})
	assert.Error(t, err)
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, nil)

	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ServiceName)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusOK, get(srv, "/ready").Code)

	metrics.RecordRateLimited()
	w = get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sahelper_rate_limited_total")
}

func TestReadyFailure(t *testing.T) {
	srv := newServer(t, func() error { return errors.New("redis down") })
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/ready").Code)
}

func TestPanicRecovered(t *testing.T) {
	srv := newServer(t, nil)
	w := get(srv, "/api/v1/chat/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestNew_ForwardedForNotTrustedByDefault(t *testing.T) {
	lim, err := middleware.NewLimiter(model.RateLimitConfig{Requests: 10, Period: time.Minute}, nil)
	require.NoError(t, err)
	srv, err := New(Config{Addr: ":0", Mode: gin.TestMode, Chat: stubChat{}, Middleware: middleware.New("", lim)})
	require.NoError(t, err)

	post := func(i int) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/message", nil)
		req.RemoteAddr = "10.0.0.1:4242"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w.Code
	}
	for i := 1; i <= 10; i++ {
		require.Equal(t, http.StatusOK, post(i), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(11))
}

func TestNew_RejectsInvalidTrustedProxy(t *testing.T) {
	_, err := New(Config{Addr: ":0", Mode: gin.TestMode, Chat: stubChat{}, TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}
