package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/devsocial/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own database, keyed by test name.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Story{},
		&models.StoryInteraction{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
		&models.Message{},
	))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// createTestUser inserts a user with a derived email
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestPost inserts a post for the given author
func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string, expiresAt *time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:    userID,
		Content:   content,
		MediaType: models.MediaText,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
