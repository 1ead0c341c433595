package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hardik88t/projman/internal/app"
	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/cache"
	"github.com/hardik88t/projman/internal/database"
	"github.com/hardik88t/projman/internal/middleware"
	"github.com/hardik88t/projman/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateAndSeed(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg, err := app.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Auth.JWT.Secret = "router-test-secret"
	cfg.Server.RateLimit.Enabled = false

	tokens, err := iauth.NewTokenService(cfg.Auth.TokenServiceConfig())
	require.NoError(t, err)
	opaque := iauth.NewOpaqueTokens(cfg.Auth.OpaqueTokenConfig())

	verification, err := services.NewEmailVerificationService(db, opaque, nil, cfg.Server.BaseURL)
	require.NoError(t, err)
	resets, err := services.NewPasswordResetService(db, opaque, nil, cfg.Server.BaseURL)
	require.NoError(t, err)
	auth, err := services.NewAuthService(db, tokens, verification)
	require.NoError(t, err)
	projects, err := services.NewProjectService(db)
	require.NoError(t, err)
	items, err := services.NewProjectItemService(db, projects)
	require.NoError(t, err)

	router, err := NewRouter(db, tokens, cfg, Services{
		Auth:         auth,
		Verification: verification,
		Resets:       resets,
		Projects:     projects,
		Items:        items,
	}, cache.NewMemoryStore())
	require.NoError(t, err)

	return router, db
}

func TestRouterHealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ok")
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	// a completed request so the latency histogram has at least one series
	warm := httptest.NewRecorder()
	router.ServeHTTP(warm, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, warm.Code)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "projman_")
}

func TestRouterGatesProjectAPI(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterSeededAdminCanLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	payload, err := json.Marshal(gin.H{"email": "admin@projectmanager.com", "password": "admin123"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"token"`)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure)
}

func TestRouterFullAuthAndProjectFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	do := func(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
		var payload []byte
		if body != nil {
			var err error
			payload, err = json.Marshal(body)
			require.NoError(t, err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		router.ServeHTTP(w, req)
		return w
	}

	signup := do(http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "e2e@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, signup.Code)

	login := do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    "e2e@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, login.Code)

	var cookie *http.Cookie
	for _, c := range login.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	created := do(http.MethodPost, "/api/projects", gin.H{
		"name":             "end to end",
		"type":             "CLI",
		"briefDescription": "full flow",
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)

	list := do(http.MethodGet, "/api/projects", nil, cookie)
	require.Equal(t, http.StatusOK, list.Code)
	require.Contains(t, list.Body.String(), "end to end")

	me := do(http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)
	require.Contains(t, me.Body.String(), "e2e@example.com")
}

func TestRouterRedirectsPageRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, w.Header().Get("Location"), "/login?redirect=")
}
