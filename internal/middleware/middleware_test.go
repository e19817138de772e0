package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uasz.sn/utilisateursapi/pkg/ratelimiter"
	"uasz.sn/utilisateursapi/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(response.RequestIDKey))
	})

	w := serve(r, http.MethodGet, "/ping", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(50 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)

		<-c.Request.Context().Done()
		c.Status(http.StatusGatewayTimeout)
	})

	assert.Equal(t, http.StatusGatewayTimeout, serve(r, http.MethodGet, "/slow", nil).Code)
}

func TestTimeout_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(0))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/roles/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := countRequests(t, "GET", "/api/roles/:id", "200")
	serve(r, http.MethodGet, "/api/roles/1", nil)
	serve(r, http.MethodGet, "/api/roles/2", nil)
	assert.Equal(t, before+2, countRequests(t, "GET", "/api/roles/:id", "200"))

	beforeMissing := countRequests(t, "GET", "unmatched", "404")
	serve(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, beforeMissing+1, countRequests(t, "GET", "unmatched", "404"))
}

func countRequests(t *testing.T, method, route, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["method"] == method && labels["route"] == route && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func rateLimitedRouter(t *testing.T, limit int64) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RateLimitWrites(ratelimiter.New(rdb, limit, time.Minute)))
	r.GET("/api/roles", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/roles", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r, mr
}

func TestRateLimitWrites(t *testing.T) {
	r, mr := rateLimitedRouter(t, 2)

	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/roles", nil).Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/roles", nil).Code)

	w := serve(r, http.MethodPost, "/api/roles", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Trop de requêtes")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/roles", nil).Code)
	assert.True(t, mr.Exists(ratelimiter.Key("192.0.2.1", "writes")))
}

func TestRateLimitWrites_FailsOpen(t *testing.T) {
	r, mr := rateLimitedRouter(t, 1)
	mr.Close()

	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/roles", nil).Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/roles", nil).Code)
}

func TestRateLimitWrites_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitWrites(nil))
	r.POST("/api/roles", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := serve(r, http.MethodPost, "/api/roles", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Remaining"))
}

func TestLogger_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger("/healthz"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/boom", nil).Code)
}
