package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubGate struct {
	callers map[string]models.Caller
}

func (g stubGate) Authenticate(_ context.Context, header string) (models.Caller, error) {
	if caller, ok := g.callers[header]; ok {
		return caller, nil
	}
	if header == "Bearer down" {
		return models.Caller{}, utils.NewUpstream("identity provider unavailable", nil)
	}
	return models.Caller{}, utils.NewUnauthorized("missing or invalid credential")
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, caller.Email)
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var gate = stubGate{callers: map[string]models.Caller{
	"Bearer admin": {Email: "admin@x.com", Role: models.RoleAdmin, Status: models.UserStatusActive},
	"Bearer dec":   {Email: "d@x.com", Role: models.RoleDecorator, Status: models.DecoratorStatusAvailable},
	"Bearer user":  {Email: "a@x.com", Role: models.RoleUser, Status: models.UserStatusActive},
}}

func TestAuthMiddleware(t *testing.T) {
	required := newRouter(AuthMiddleware(gate, false))
	assert.Equal(t, http.StatusUnauthorized, do(required, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(required, "Bearer nope").Code)
	assert.Equal(t, http.StatusBadGateway, do(required, "Bearer down").Code)

	w := do(required, "Bearer user")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", w.Body.String())

	optional := newRouter(AuthMiddleware(gate, true))
	assert.Equal(t, "anonymous", do(optional, "").Body.String())
	assert.Equal(t, "anonymous", do(optional, "Bearer nope").Body.String())
	assert.Equal(t, "admin@x.com", do(optional, "Bearer admin").Body.String())
}

func TestCapabilityMiddleware(t *testing.T) {
	adminOnly := newRouter(AuthMiddleware(gate, false), AdminOnly())
	assert.Equal(t, http.StatusOK, do(adminOnly, "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, do(adminOnly, "Bearer dec").Code)

	decOrAdmin := newRouter(AuthMiddleware(gate, false), DecoratorOrAdmin())
	assert.Equal(t, http.StatusOK, do(decOrAdmin, "Bearer dec").Code)
	assert.Equal(t, http.StatusOK, do(decOrAdmin, "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, do(decOrAdmin, "Bearer user").Code)

	unauthenticated := newRouter(AdminOnly())
	assert.Equal(t, http.StatusUnauthorized, do(unauthenticated, "").Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)
}

func TestRateLimiterEvictsIdleIPs(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return now }

	first := store.getLimiter("198.51.100.1")
	now = now.Add(5 * time.Minute)
	store.getLimiter("198.51.100.2")
	assert.Len(t, store.limiters, 2)

	now = now.Add(7 * time.Minute)
	store.getLimiter("198.51.100.2")
	assert.Len(t, store.limiters, 1)
	assert.Contains(t, store.limiters, "198.51.100.2")

	assert.NotSame(t, first, store.getLimiter("198.51.100.1"))
	assert.Len(t, store.limiters, 2)
}

func TestGetClientIP(t *testing.T) {
	var got string
	r := gin.New()
	r.GET("/", func(c *gin.Context) { got = getClientIP(c) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.2", got)

	// Without trusted proxies the forwarding header is ignored.
	assert.NoError(t, r.SetTrustedProxies(nil))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.2", got)
}
