package models

import "gorm.io/datatypes"

const (
	ItemTypeFeature       = "FEATURE"
	ItemTypeBug           = "BUG"
	ItemTypeImprovement   = "IMPROVEMENT"
	ItemTypeTask          = "TASK"
	ItemTypeResearch      = "RESEARCH"
	ItemTypeDocumentation = "DOCUMENTATION"
)

const (
	ItemStatusTodo       = "TODO"
	ItemStatusInProgress = "IN_PROGRESS"
	ItemStatusCompleted  = "COMPLETED"
	ItemStatusBlocked    = "BLOCKED"
	ItemStatusCancelled  = "CANCELLED"
)

// ProjectItem is a feature, bug, or task attached to a project.
type ProjectItem struct {
	BaseModel

	ProjectID string `gorm:"type:uuid;not null;index" json:"projectId"`

	Name        string `gorm:"not null;size:100" json:"name"`
	Description string `gorm:"size:1000" json:"description,omitempty"`
	Type        string `gorm:"not null;default:TASK" json:"type"`
	Status      string `gorm:"not null;default:TODO" json:"status"`
	Priority    string `gorm:"not null;default:MEDIUM" json:"priority"`

	Labels datatypes.JSONSlice[string] `json:"labels"`
}
