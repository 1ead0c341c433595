package database

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hardik88t/projman/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.EmailVerification{},
		&models.PasswordResetToken{},
		&models.Project{},
		&models.ProjectItem{},
		&models.CacheEntry{},
	)
}

// seedAdminEmail identifies the default administrator created on first boot.
const seedAdminEmail = "admin@projectmanager.com"

// seedAdminPasswordHash is the bcrypt hash (cost 12) of the default
// development password "admin123". Deployments are expected to change it.
const seedAdminPasswordHash = "$2a$12$3hNcZLARytfksP9axPZ0MuoMd2vpE1.NsxqBb9h/n/c0099vztaae"

// SeedData populates the default admin user and a starter project so a fresh
// instance is immediately usable.
func SeedData(db *gorm.DB) error {
	var admin models.User
	err := db.Where("email = ?", seedAdminEmail).Take(&admin).Error
	switch {
	case err == nil:
		return nil // already seeded
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	adminUsername := "admin"
	admin = models.User{
		Email:         seedAdminEmail,
		Username:      &adminUsername,
		Name:          "Admin User",
		Password:      seedAdminPasswordHash,
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	starter := models.Project{
		UserID:           admin.ID,
		Name:             "Project Manager",
		Type:             models.ProjectTypeWebapp,
		Status:           models.ProjectStatusActive,
		Priority:         models.PriorityHigh,
		BriefDescription: "A project management service to track and manage development projects",
		LocalPath:        "projman",
		TechStack:        datatypes.NewJSONSlice([]string{"Go", "Gin", "GORM", "SQLite"}),
		Tags:             datatypes.NewJSONSlice([]string{"project-management", "api"}),
		Items: []models.ProjectItem{
			{
				Name:        "Add search functionality",
				Description: "Implement advanced search across projects and items",
				Type:        models.ItemTypeFeature,
				Status:      models.ItemStatusTodo,
				Priority:    models.PriorityMedium,
				Labels:      datatypes.NewJSONSlice([]string{"search", "enhancement"}),
			},
			{
				Name:        "Add import/export functionality",
				Description: "Allow importing and exporting projects in JSON format",
				Type:        models.ItemTypeFeature,
				Status:      models.ItemStatusTodo,
				Priority:    models.PriorityMedium,
				Labels:      datatypes.NewJSONSlice([]string{"import", "export", "json"}),
			},
		},
	}

	return db.Create(&starter).Error
}
