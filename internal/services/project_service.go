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

// ErrProjectNotFound is returned when a project does not exist or belongs to
// a different user. The two cases are deliberately indistinguishable.
var ErrProjectNotFound = errors.New("project service: not found")

// ProjectInput carries validated project fields for create and update.
type ProjectInput struct {
	Name                string
	Type                string
	Status              string
	Priority            string
	BriefDescription    string
	DetailedDescription string
	LiveURL             string
	GithubURL           string
	LocalPath           string
	TechStack           []string
	Tags                []string
}

// ProjectFilter narrows List results.
type ProjectFilter struct {
	Status   string
	Type     string
	Priority string
	Search   string
}

// ProjectService provides owner-scoped CRUD over projects. Every query is
// keyed by the authenticated user's id; there is no cross-user access.
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *gorm.DB) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	return &ProjectService{db: db}, nil
}

// List returns the user's projects with their items, most recently updated
// first, optionally filtered.
func (s *ProjectService) List(ctx context.Context, userID string, filter ProjectFilter) ([]models.Project, error) {
	query := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("updated_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brief_description) LIKE ?", pattern, pattern)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project service: list: %w", err)
	}
	return projects, nil
}

// Get loads one of the user's projects with its items.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project service: get: %w", err)
	}
	return &project, nil
}

// Create stores a new project for the user.
func (s *ProjectService) Create(ctx context.Context, userID string, input ProjectInput) (*models.Project, error) {
	project := models.Project{
		UserID:              userID,
		Name:                strings.TrimSpace(input.Name),
		Type:                input.Type,
		Status:              defaultString(input.Status, models.ProjectStatusPlanning),
		Priority:            defaultString(input.Priority, models.PriorityMedium),
		BriefDescription:    strings.TrimSpace(input.BriefDescription),
		DetailedDescription: input.DetailedDescription,
		LiveURL:             input.LiveURL,
		GithubURL:           input.GithubURL,
		LocalPath:           input.LocalPath,
		TechStack:           input.TechStack,
		Tags:                input.Tags,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("project service: create: %w", err)
	}

	metrics.ProjectOperations.WithLabelValues("project", "create").Inc()
	return &project, nil
}

// Update replaces the mutable fields of one of the user's projects.
func (s *ProjectService) Update(ctx context.Context, userID, projectID string, input ProjectInput) (*models.Project, error) {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	project.Name = strings.TrimSpace(input.Name)
	project.Type = input.Type
	project.Status = defaultString(input.Status, project.Status)
	project.Priority = defaultString(input.Priority, project.Priority)
	project.BriefDescription = strings.TrimSpace(input.BriefDescription)
	project.DetailedDescription = input.DetailedDescription
	project.LiveURL = input.LiveURL
	project.GithubURL = input.GithubURL
	project.LocalPath = input.LocalPath
	project.TechStack = input.TechStack
	project.Tags = input.Tags

	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, fmt.Errorf("project service: update: %w", err)
	}

	metrics.ProjectOperations.WithLabelValues("project", "update").Inc()
	return project, nil
}

// Delete removes one of the user's projects together with its items.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", projectID, userID).
			Delete(&models.Project{})
		if res.Error != nil {
			return fmt.Errorf("delete project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		// SQLite without foreign_keys=ON would orphan items; delete explicitly
		return tx.Where("project_id = ?", projectID).
			Delete(&models.ProjectItem{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("project service: %w", err)
	}

	metrics.ProjectOperations.WithLabelValues("project", "delete").Inc()
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
