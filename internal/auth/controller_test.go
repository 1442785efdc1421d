package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"movieticket/internal/customers"
	"movieticket/internal/session"
	"movieticket/pkg/logger"
	"movieticket/pkg/upstream"
)

func newAuthEnv(t *testing.T, handler http.HandlerFunc) (*gin.Engine, *session.Holder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.New()
	api := upstream.New(srv.URL, "/api", 2*time.Second, log)
	holder := session.NewHolder(session.NewMemoryStore(), log)

	r := gin.New()
	SetupAuthRoutes(r.Group(""), NewController(customers.NewClient(api), holder, log))
	return r, holder
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/customers/login" {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Not found"}`))
		return
	}
	w.Write([]byte(`{"success":true,"message":"Login successful","data":{
		"customerId":12,"email":"alice@example.com","firstName":"Alice","lastName":"Moreno","role":"CUSTOMER"}}`))
}

func TestLoginPopulatesHolderAndEchoesReturnURL(t *testing.T) {
	r, holder := newAuthEnv(t, loginHandler)

	w := postJSON(r, "/auth/login?returnUrl=%2Fpurchase%2Fstart%2F3",
		map[string]string{"email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Session   session.Session `json:"session"`
			ReturnURL string          `json:"returnUrl"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, int64(12), resp.Data.Session.CustomerID)
	require.Equal(t, "/purchase/start/3", resp.Data.ReturnURL)

	require.True(t, holder.IsLoggedIn())
	require.True(t, holder.IsCustomer())
}

func TestLoginFailureKeepsHolderEmpty(t *testing.T) {
	r, holder := newAuthEnv(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid email or password"}`))
	})

	w := postJSON(r, "/auth/login",
		map[string]string{"email": "alice@example.com", "password": "wrong1"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Invalid email or password", resp.Message)

	require.False(t, holder.IsLoggedIn())
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	r, _ := newAuthEnv(t, loginHandler)

	w := postJSON(r, "/auth/login", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterForwardsUpstreamResult(t *testing.T) {
	r, _ := newAuthEnv(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/api/customers/register", req.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Customer registered successfully","data":{
			"id":14,"email":"new@example.com","firstName":"New","lastName":"User","role":"CUSTOMER","enabled":true}}`))
	})

	w := postJSON(r, "/auth/register", map[string]string{
		"email":     "new@example.com",
		"phone":     "5551234",
		"firstName": "New",
		"lastName":  "User",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterDuplicateEmailSurfacesMessage(t *testing.T) {
	r, _ := newAuthEnv(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"Email already registered"}`))
	})

	w := postJSON(r, "/auth/register", map[string]string{
		"email":     "dup@example.com",
		"phone":     "5551234",
		"firstName": "Dup",
		"lastName":  "User",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Email already registered", resp.Message)
}

func TestLogoutClearsSession(t *testing.T) {
	r, holder := newAuthEnv(t, loginHandler)

	w := postJSON(r, "/auth/login", map[string]string{"email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, holder.IsLoggedIn())

	w = postJSON(r, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, holder.IsLoggedIn())
}

func TestCurrentSession(t *testing.T) {
	r, holder := newAuthEnv(t, loginHandler)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	postJSON(r, "/auth/login", map[string]string{"email": "alice@example.com", "password": "secret1"})
	require.True(t, holder.IsLoggedIn())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			IsAdmin    bool `json:"isAdmin"`
			IsCustomer bool `json:"isCustomer"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Data.IsAdmin)
	require.True(t, resp.Data.IsCustomer)
}
