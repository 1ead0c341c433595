package models

import "gorm.io/datatypes"

// Project classification enums. Values mirror the API contract and are
// validated at the handler boundary.
const (
	ProjectTypeWebapp           = "WEBAPP"
	ProjectTypeWebsite          = "WEBSITE"
	ProjectTypeCLI              = "CLI"
	ProjectTypeAPI              = "API"
	ProjectTypeMobile           = "MOBILE"
	ProjectTypeDesktop          = "DESKTOP"
	ProjectTypeBrowserExtension = "BROWSER_EXTENSION"
	ProjectTypeAIProject        = "AI_PROJECT"
	ProjectTypeDevOps           = "DEVOPS"
	ProjectTypeClone            = "CLONE"
	ProjectTypeOther            = "OTHER"
)

const (
	ProjectStatusPlanning  = "PLANNING"
	ProjectStatusActive    = "ACTIVE"
	ProjectStatusCompleted = "COMPLETED"
	ProjectStatusOnHold    = "ON_HOLD"
	ProjectStatusArchived  = "ARCHIVED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Project is a tracked development project owned by a single user.
type Project struct {
	BaseModel

	UserID string `gorm:"type:uuid;not null;index" json:"userId"`

	Name                string `gorm:"not null;size:100" json:"name"`
	Type                string `gorm:"not null" json:"type"`
	Status              string `gorm:"not null;default:PLANNING" json:"status"`
	Priority            string `gorm:"not null;default:MEDIUM" json:"priority"`
	BriefDescription    string `gorm:"not null;size:500" json:"briefDescription"`
	DetailedDescription string `gorm:"size:2000" json:"detailedDescription,omitempty"`
	LiveURL             string `json:"liveUrl,omitempty"`
	GithubURL           string `json:"githubUrl,omitempty"`
	LocalPath           string `gorm:"size:200" json:"localPath,omitempty"`

	TechStack datatypes.JSONSlice[string] `json:"techStack"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`

	Items []ProjectItem `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
