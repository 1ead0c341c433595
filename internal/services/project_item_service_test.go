package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardik88t/projman/internal/models"
)

func TestItemCRUD(t *testing.T) {
	db := newTestDB(t)
	projects, err := NewProjectService(db)
	require.NoError(t, err)
	service, err := NewProjectItemService(db, projects)
	require.NoError(t, err)

	ctx := context.Background()
	owner := createTestUser(t, db, "items@example.com", "password123")
	project := createTestProject(t, db, owner.ID, "tracker")

	created, err := service.Create(ctx, owner.ID, project.ID, ProjectItemInput{
		Name:        "fix login bug",
		Description: "cookie not cleared on logout",
		Type:        models.ItemTypeBug,
		Priority:    models.PriorityHigh,
		Labels:      []string{"auth"},
	})
	require.NoError(t, err)
	require.Equal(t, models.ItemStatusTodo, created.Status)

	fetched, err := service.Get(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, "fix login bug", fetched.Name)

	updated, err := service.Update(ctx, owner.ID, created.ID, ProjectItemInput{
		Name:   "fix login bug",
		Status: models.ItemStatusCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, models.ItemStatusCompleted, updated.Status)

	list, err := service.List(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, service.Delete(ctx, owner.ID, created.ID))
	_, err = service.Get(ctx, owner.ID, created.ID)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemDefaultsApplied(t *testing.T) {
	db := newTestDB(t)
	projects, err := NewProjectService(db)
	require.NoError(t, err)
	service, err := NewProjectItemService(db, projects)
	require.NoError(t, err)

	ctx := context.Background()
	owner := createTestUser(t, db, "defaults@example.com", "password123")
	project := createTestProject(t, db, owner.ID, "defaults")

	item, err := service.Create(ctx, owner.ID, project.ID, ProjectItemInput{Name: "bare"})
	require.NoError(t, err)
	require.Equal(t, models.ItemTypeTask, item.Type)
	require.Equal(t, models.ItemStatusTodo, item.Status)
	require.Equal(t, models.PriorityMedium, item.Priority)
}

func TestItemsAreOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	projects, err := NewProjectService(db)
	require.NoError(t, err)
	service, err := NewProjectItemService(db, projects)
	require.NoError(t, err)

	ctx := context.Background()
	owner := createTestUser(t, db, "mine@example.com", "password123")
	stranger := createTestUser(t, db, "theirs@example.com", "password123")
	project := createTestProject(t, db, owner.ID, "scoped")

	item, err := service.Create(ctx, owner.ID, project.ID, ProjectItemInput{Name: "secret"})
	require.NoError(t, err)

	_, err = service.Create(ctx, stranger.ID, project.ID, ProjectItemInput{Name: "intruder"})
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = service.Get(ctx, stranger.ID, item.ID)
	require.ErrorIs(t, err, ErrItemNotFound)

	_, err = service.List(ctx, stranger.ID, project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	require.ErrorIs(t, service.Delete(ctx, stranger.ID, item.ID), ErrItemNotFound)
}
