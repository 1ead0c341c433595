package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hardik88t/projman/internal/services"
	appErrors "github.com/hardik88t/projman/pkg/errors"
	"github.com/hardik88t/projman/pkg/response"
)

// ProjectItemHandler exposes CRUD over the items of a user's projects.
type ProjectItemHandler struct {
	items *services.ProjectItemService
}

func NewProjectItemHandler(items *services.ProjectItemService) *ProjectItemHandler {
	return &ProjectItemHandler{items: items}
}

type projectItemRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	Type        string   `json:"type" validate:"omitempty,oneof=FEATURE BUG IMPROVEMENT TASK RESEARCH DOCUMENTATION"`
	Status      string   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED BLOCKED CANCELLED"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Labels      []string `json:"labels"`
}

func (r projectItemRequest) toInput() services.ProjectItemInput {
	return services.ProjectItemInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Status:      r.Status,
		Priority:    r.Priority,
		Labels:      r.Labels,
	}
}

// GET /api/projects/:id/items
func (h *ProjectItemHandler) List(c *gin.Context) {
	items, err := h.items.List(requestContext(c), currentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"items": items})
}

// POST /api/projects/:id/items
func (h *ProjectItemHandler) Create(c *gin.Context) {
	var req projectItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.items.Create(requestContext(c), currentUserID(c), c.Param("id"), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{"item": item})
}

// GET /api/project-items/:id
func (h *ProjectItemHandler) Get(c *gin.Context) {
	item, err := h.items.Get(requestContext(c), currentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"item": item})
}

// PUT /api/project-items/:id
func (h *ProjectItemHandler) Update(c *gin.Context) {
	var req projectItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.items.Update(requestContext(c), currentUserID(c), c.Param("id"), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"item": item})
}

// DELETE /api/project-items/:id
func (h *ProjectItemHandler) Delete(c *gin.Context) {
	if err := h.items.Delete(requestContext(c), currentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Item deleted")
}

func (h *ProjectItemHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound), errors.Is(err, services.ErrProjectNotFound):
		response.Error(c, appErrors.ErrNotFound)
	default:
		response.Error(c, appErrors.Wrap(err, "project item operation failed"))
	}
}
