package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hardik88t/projman/internal/models"
	"github.com/hardik88t/projman/pkg/metrics"
)

// ErrItemNotFound is returned when an item does not exist under one of the
// user's projects.
var ErrItemNotFound = errors.New("project item service: not found")

// ProjectItemInput carries validated item fields for create and update.
type ProjectItemInput struct {
	Name        string
	Description string
	Type        string
	Status      string
	Priority    string
	Labels      []string
}

// ProjectItemService provides CRUD over project items. Ownership is enforced
// through the parent project on every operation.
type ProjectItemService struct {
	db       *gorm.DB
	projects *ProjectService
}

// NewProjectItemService constructs a ProjectItemService.
func NewProjectItemService(db *gorm.DB, projects *ProjectService) (*ProjectItemService, error) {
	if db == nil {
		return nil, errors.New("project item service: db is required")
	}
	if projects == nil {
		return nil, errors.New("project item service: project service is required")
	}
	return &ProjectItemService{db: db, projects: projects}, nil
}

// List returns the items of one of the user's projects, oldest first.
func (s *ProjectItemService) List(ctx context.Context, userID, projectID string) ([]models.ProjectItem, error) {
	if err := s.ensureOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}

	var items []models.ProjectItem
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("project item service: list: %w", err)
	}
	return items, nil
}

// Get loads a single item under one of the user's projects.
func (s *ProjectItemService) Get(ctx context.Context, userID, itemID string) (*models.ProjectItem, error) {
	var item models.ProjectItem
	err := s.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = project_items.project_id").
		Where("project_items.id = ? AND projects.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("project item service: get: %w", err)
	}
	return &item, nil
}

// Create adds an item to one of the user's projects.
func (s *ProjectItemService) Create(ctx context.Context, userID, projectID string, input ProjectItemInput) (*models.ProjectItem, error) {
	if err := s.ensureOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}

	item := models.ProjectItem{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Type:        defaultString(input.Type, models.ItemTypeTask),
		Status:      defaultString(input.Status, models.ItemStatusTodo),
		Priority:    defaultString(input.Priority, models.PriorityMedium),
		Labels:      input.Labels,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("project item service: create: %w", err)
	}

	metrics.ProjectOperations.WithLabelValues("item", "create").Inc()
	return &item, nil
}

// Update replaces the mutable fields of an item under one of the user's
// projects.
func (s *ProjectItemService) Update(ctx context.Context, userID, itemID string, input ProjectItemInput) (*models.ProjectItem, error) {
	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.Type = defaultString(input.Type, item.Type)
	item.Status = defaultString(input.Status, item.Status)
	item.Priority = defaultString(input.Priority, item.Priority)
	item.Labels = input.Labels

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("project item service: update: %w", err)
	}

	metrics.ProjectOperations.WithLabelValues("item", "update").Inc()
	return item, nil
}

// Delete removes an item under one of the user's projects.
func (s *ProjectItemService) Delete(ctx context.Context, userID, itemID string) error {
	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.ProjectItem{}, "id = ?", item.ID).Error; err != nil {
		return fmt.Errorf("project item service: delete: %w", err)
	}

	metrics.ProjectOperations.WithLabelValues("item", "delete").Inc()
	return nil
}

func (s *ProjectItemService) ensureOwnership(ctx context.Context, userID, projectID string) error {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("project item service: check project: %w", err)
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}
