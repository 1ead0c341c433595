package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/database"
	"github.com/hardik88t/projman/internal/models"
	"github.com/hardik88t/projman/pkg/crypto"
	"github.com/hardik88t/projman/pkg/mail"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Email:    email,
		Username: &email,
		Name:     "Test User",
		Password: hash,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestProject(t *testing.T, db *gorm.DB, userID, name string) *models.Project {
	t.Helper()

	project := models.Project{
		UserID:           userID,
		Name:             name,
		Type:             models.ProjectTypeWebapp,
		Status:           models.ProjectStatusPlanning,
		Priority:         models.PriorityMedium,
		BriefDescription: "test project",
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

// recordingMailer captures sent messages for assertions.
type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	fail     error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func newOpaqueTokens(t *testing.T) *iauth.OpaqueTokens {
	t.Helper()
	return iauth.NewOpaqueTokens(iauth.OpaqueTokenConfig{})
}
