package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"movieticket/internal/session"
	"movieticket/pkg/logger"
)

func newGuardedRouter(t *testing.T, holder *session.Holder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", RequireLogin(holder), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin-only", RequireAdmin(holder), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/customer-only", RequireCustomer(holder), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func login(t *testing.T, holder *session.Holder, role session.Role) {
	t.Helper()
	require.NoError(t, holder.Set(context.Background(), &session.Session{
		CustomerID: 12,
		Email:      "user@example.com",
		Role:       role,
	}))
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRequireLoginRedirectsWithReturnURL(t *testing.T) {
	holder := session.NewHolder(session.NewMemoryStore(), logger.New())
	r := newGuardedRouter(t, holder)

	w := get(r, "/protected")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login?returnUrl=%2Fprotected", w.Header().Get("Location"))

	login(t, holder, session.RoleCustomer)
	require.Equal(t, http.StatusOK, get(r, "/protected").Code)
}

func TestRequireAdminRedirectsHome(t *testing.T) {
	holder := session.NewHolder(session.NewMemoryStore(), logger.New())
	r := newGuardedRouter(t, holder)

	// Anonymous and customer sessions both bounce home
	w := get(r, "/admin-only")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/home", w.Header().Get("Location"))

	login(t, holder, session.RoleCustomer)
	w = get(r, "/admin-only")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/home", w.Header().Get("Location"))

	login(t, holder, session.RoleAdmin)
	require.Equal(t, http.StatusOK, get(r, "/admin-only").Code)
}

func TestRequireCustomerRejectsAdmin(t *testing.T) {
	holder := session.NewHolder(session.NewMemoryStore(), logger.New())
	r := newGuardedRouter(t, holder)

	login(t, holder, session.RoleAdmin)
	w := get(r, "/customer-only")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/home", w.Header().Get("Location"))

	login(t, holder, session.RoleCustomer)
	require.Equal(t, http.StatusOK, get(r, "/customer-only").Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/")
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A caller-provided id passes through unchanged
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
}
