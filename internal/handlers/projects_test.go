package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/database"
	"github.com/hardik88t/projman/internal/middleware"
	"github.com/hardik88t/projman/internal/models"
	"github.com/hardik88t/projman/internal/services"
)

type projectTestEnv struct {
	router *gin.Engine
	cookie *http.Cookie
}

func newProjectTestEnv(t *testing.T) *projectTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tokens, err := iauth.NewTokenService(iauth.TokenConfig{Secret: "project-test-secret"})
	require.NoError(t, err)

	auth, err := services.NewAuthService(db, tokens, nil)
	require.NoError(t, err)
	projects, err := services.NewProjectService(db)
	require.NoError(t, err)
	items, err := services.NewProjectItemService(db, projects)
	require.NoError(t, err)

	projectHandler := NewProjectHandler(projects)
	itemHandler := NewProjectItemHandler(items)

	router := gin.New()
	router.Use(middleware.Gate(tokens, middleware.NewRouteClassifier(nil, nil), middleware.GateConfig{}))
	router.GET("/api/projects", projectHandler.List)
	router.POST("/api/projects", projectHandler.Create)
	router.GET("/api/projects/:id", projectHandler.Get)
	router.PUT("/api/projects/:id", projectHandler.Update)
	router.DELETE("/api/projects/:id", projectHandler.Delete)
	router.GET("/api/projects/:id/items", itemHandler.List)
	router.POST("/api/projects/:id/items", itemHandler.Create)
	router.GET("/api/project-items/:id", itemHandler.Get)
	router.PUT("/api/project-items/:id", itemHandler.Update)
	router.DELETE("/api/project-items/:id", itemHandler.Delete)

	user, err := auth.Register(context.Background(), services.RegisterInput{
		Email:    "owner@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	token, err := tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	return &projectTestEnv{
		router: router,
		cookie: &http.Cookie{Name: middleware.SessionCookieName, Value: token},
	}
}

func (env *projectTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(env.cookie)
	env.router.ServeHTTP(w, req)
	return w
}

func (env *projectTestEnv) createProject(t *testing.T, name string) models.Project {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/projects", gin.H{
		"name":             name,
		"type":             "WEBAPP",
		"briefDescription": "test project",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Project
}

func TestProjectEndpointsRequireAuth(t *testing.T) {
	env := newProjectTestEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	env := newProjectTestEnv(t)

	project := env.createProject(t, "tracker")
	require.NotEmpty(t, project.ID)
	require.Equal(t, "PLANNING", project.Status)

	list := env.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, list.Code)
	require.Contains(t, list.Body.String(), "tracker")

	update := env.do(t, http.MethodPut, "/api/projects/"+project.ID, gin.H{
		"name":             "tracker v2",
		"type":             "API",
		"status":           "ACTIVE",
		"briefDescription": "updated",
	})
	require.Equal(t, http.StatusOK, update.Code)
	require.Contains(t, update.Body.String(), "tracker v2")

	del := env.do(t, http.MethodDelete, "/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, del.Code)

	missing := env.do(t, http.MethodGet, "/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestProjectValidation(t *testing.T) {
	env := newProjectTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/projects", gin.H{
		"name":             "bad type",
		"type":             "SPACESHIP",
		"briefDescription": "x",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestProjectItemLifecycle(t *testing.T) {
	env := newProjectTestEnv(t)
	project := env.createProject(t, "with items")

	create := env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/items", gin.H{
		"name": "write docs",
		"type": "DOCUMENTATION",
	})
	require.Equal(t, http.StatusCreated, create.Code)

	var created struct {
		Item models.ProjectItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))
	require.Equal(t, "TODO", created.Item.Status)

	update := env.do(t, http.MethodPut, "/api/project-items/"+created.Item.ID, gin.H{
		"name":   "write docs",
		"status": "COMPLETED",
	})
	require.Equal(t, http.StatusOK, update.Code)
	require.Contains(t, update.Body.String(), "COMPLETED")

	list := env.do(t, http.MethodGet, "/api/projects/"+project.ID+"/items", nil)
	require.Equal(t, http.StatusOK, list.Code)
	require.Contains(t, list.Body.String(), "write docs")

	del := env.do(t, http.MethodDelete, "/api/project-items/"+created.Item.ID, nil)
	require.Equal(t, http.StatusOK, del.Code)

	missing := env.do(t, http.MethodGet, "/api/project-items/"+created.Item.ID, nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestItemOnUnknownProjectIs404(t *testing.T) {
	env := newProjectTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/projects/does-not-exist/items", gin.H{"name": "orphan"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
