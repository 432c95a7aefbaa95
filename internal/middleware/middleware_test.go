package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
	"github.com/OFTGNOV/Sa-helper-bot/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw Middleware, trustedProxies ...string) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		panic(err)
	}
	r.POST("/chat", mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", mw.AdminAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func send(r http.Handler, method, path, ip string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":12345"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_EleventhRequestRejected(t *testing.T) {
	lim, err := NewLimiter(model.RateLimitConfig{Requests: 10, Period: time.Minute}, nil)
	require.NoError(t, err)
	r := newRouter(New("", lim))

	for i := 1; i <= 10; i++ {
		w := send(r, http.MethodPost, "/chat", "10.0.0.1", nil)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := send(r, http.MethodPost, "/chat", "10.0.0.1", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body response.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, errx.RateLimitedMessage, body.Message)

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/chat", "10.0.0.2", nil).Code)
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	lim, err := NewLimiter(model.RateLimitConfig{Requests: 10, Period: time.Minute}, nil)
	require.NoError(t, err)
	r := newRouter(New("", lim))

	for i := 1; i <= 10; i++ {
		w := send(r, http.MethodPost, "/chat", "10.0.0.1", map[string]string{"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i)})
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := send(r, http.MethodPost, "/chat", "10.0.0.1", map[string]string{"X-Forwarded-For": "203.0.113.99"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_HonoursForwardedForFromTrustedProxy(t *testing.T) {
	lim, err := NewLimiter(model.RateLimitConfig{Requests: 10, Period: time.Minute}, nil)
	require.NoError(t, err)
	r := newRouter(New("", lim), "10.0.0.0/8")

	for i := 1; i <= 10; i++ {
		w := send(r, http.MethodPost, "/chat", "10.0.0.1", map[string]string{"X-Forwarded-For": "203.0.113.7"})
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
	w := send(r, http.MethodPost, "/chat", "10.0.0.1", map[string]string{"X-Forwarded-For": "203.0.113.7"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// a different visitor behind the same proxy has its own budget
	w = send(r, http.MethodPost, "/chat", "10.0.0.1", map[string]string{"X-Forwarded-For": "203.0.113.8"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewLimiter_RejectsInvalidRate(t *testing.T) {
	_, err := NewLimiter(model.RateLimitConfig{Requests: 0, Period: time.Minute}, nil)
	assert.Error(t, err)
}

func TestRateLimit_DisabledWithoutLimiter(t *testing.T) {
	r := newRouter(New("", nil))
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, send(r, http.MethodPost, "/chat", "10.0.0.1", nil).Code)
	}
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"bearer", "s3cret", "Bearer s3cret", http.StatusOK},
		{"raw", "s3cret", "s3cret", http.StatusOK},
		{"wrong", "s3cret", "Bearer nope", http.StatusUnauthorized},
		{"missing", "s3cret", "", http.StatusUnauthorized},
		{"disabled", "", "Bearer ", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(New(tt.token, nil))
			w := send(r, http.MethodGet, "/admin", "10.0.0.1", map[string]string{"Authorization": tt.header})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
