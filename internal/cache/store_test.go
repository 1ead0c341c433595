package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hardik88t/projman/internal/models"
)

func TestMemoryStoreCountsWithinWindow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.clock = func() time.Time { return current }

	for i := int64(1); i <= 3; i++ {
		count, ttl, err := store.IncrementWithTTL(context.Background(), "k", time.Minute)
		require.NoError(t, err)
		require.Equal(t, i, count)
		require.Greater(t, ttl, time.Duration(0))
	}

	// Independent keys do not interfere.
	count, _, err := store.IncrementWithTTL(context.Background(), "other", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// Window elapses, counter resets.
	current = current.Add(2 * time.Minute)
	count, _, err = store.IncrementWithTTL(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestDatabaseStoreIncrement(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CacheEntry{}))

	store := NewDatabaseStore(db)

	count, ttl, err := store.IncrementWithTTL(context.Background(), "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Greater(t, ttl, time.Duration(0))

	count, _, err = store.IncrementWithTTL(context.Background(), "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}
