package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hardik88t/projman/internal/services"
	appErrors "github.com/hardik88t/projman/pkg/errors"
	"github.com/hardik88t/projman/pkg/response"
)

// ProjectHandler exposes owner-scoped project CRUD.
type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Name                string   `json:"name" validate:"required,min=1,max=100"`
	Type                string   `json:"type" validate:"required,oneof=WEBAPP WEBSITE CLI API MOBILE DESKTOP BROWSER_EXTENSION AI_PROJECT DEVOPS CLONE OTHER"`
	Status              string   `json:"status" validate:"omitempty,oneof=PLANNING ACTIVE COMPLETED ON_HOLD ARCHIVED"`
	Priority            string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	BriefDescription    string   `json:"briefDescription" validate:"required,min=1,max=500"`
	DetailedDescription string   `json:"detailedDescription" validate:"omitempty,max=2000"`
	LiveURL             string   `json:"liveUrl" validate:"omitempty,url"`
	GithubURL           string   `json:"githubUrl" validate:"omitempty,url"`
	LocalPath           string   `json:"localPath" validate:"omitempty,max=200"`
	TechStack           []string `json:"techStack"`
	Tags                []string `json:"tags"`
}

func (r projectRequest) toInput() services.ProjectInput {
	return services.ProjectInput{
		Name:                r.Name,
		Type:                r.Type,
		Status:              r.Status,
		Priority:            r.Priority,
		BriefDescription:    r.BriefDescription,
		DetailedDescription: r.DetailedDescription,
		LiveURL:             r.LiveURL,
		GithubURL:           r.GithubURL,
		LocalPath:           r.LocalPath,
		TechStack:           r.TechStack,
		Tags:                r.Tags,
	}
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	filter := services.ProjectFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}

	projects, err := h.projects.List(requestContext(c), currentUserID(c), filter)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, "list projects failed"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"projects": projects})
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(requestContext(c), currentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"project": project})
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if !bindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Create(requestContext(c), currentUserID(c), req.toInput())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, "create project failed"))
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{"project": project})
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectRequest
	if !bindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Update(requestContext(c), currentUserID(c), c.Param("id"), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"project": project})
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(requestContext(c), currentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Project deleted")
}

func (h *ProjectHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrProjectNotFound) {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.Error(c, appErrors.Wrap(err, "project operation failed"))
}
