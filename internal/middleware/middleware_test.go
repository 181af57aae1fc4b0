package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/livro_caixa/internal/metrics"
	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "livro-caixa-test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(logBuf *bytes.Buffer, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(logBuf, nil))))
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"userID": nil})
			return
		}
		GetLoggerFromContext(c).Info("handler ran")
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := utils.GenerateJWT("user-1", "maria@example.com", testSecret, time.Hour, testIssuer, time.Now())
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("user-1", "maria@example.com", testSecret, time.Minute, testIssuer, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWT("user-1", "maria@example.com", testSecret, time.Hour, "someone-else", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "Authorization header format must be Bearer {token}"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantError: "Token has expired"},
		{name: "wrong issuer", header: "Bearer " + otherIssuer, wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "garbage", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			r := newRouter(&logs, AuthMiddleware(testSecret, testIssuer))

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				assert.Equal(t, "user-1", body["userID"])
				assert.Contains(t, logs.String(), `"user_id":"user-1"`)
			}
		})
	}
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	requestID := w.Header().Get(requestIDHeader)
	assert.NotEmpty(t, requestID)
	assert.Contains(t, logs.String(), "Request completed")
	assert.Contains(t, logs.String(), requestID)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewLimiter("2-M")
	require.NoError(t, err)

	var logs bytes.Buffer
	r := newRouter(&logs, RateLimit(lim))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewLimiter("lots")
	assert.Error(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	var logs bytes.Buffer
	r := newRouter(&logs, MetricsMiddleware(m))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/whoami", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	out := w.Body.String()
	assert.True(t, strings.Contains(out, `livro_caixa_http_requests_total{method="GET",route="/whoami",status="200"} 1`), out)
	assert.Contains(t, out, `route="unmatched",status="404"`)
	assert.NotContains(t, out, `route="/metrics"`)
}

func TestPosthogMiddleware_DisabledPassesThrough(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs, PosthogMiddleware(&utils.PosthogClientWrapper{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteEventName(t *testing.T) {
	tests := []struct {
		route string
		want  string
		ok    bool
	}{
		{"/api/v1/drawer/open", "api_v1_drawer_open", true},
		{"/api/v1/closures/:closureID/reopen", "api_v1_closures_closureID_reopen", true},
		{"/api/v1/sales/:saleID", "api_v1_sales_saleID", true},
		{"", "", false},
		{"/health", "", false},
		{"/metrics", "", false},
		{"/swagger/*any", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got, ok := routeEventName(tt.route)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
