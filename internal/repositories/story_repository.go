package repositories

import (
	"time"

	"github.com/devsocial/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetActiveStories(now time.Time) ([]models.StoryWithAuthor, error)
	GetStoryOwner(storyID uint) (uint, error)
	DeleteStory(storyID, userID uint) (bool, error)
	MarkViewed(storyID, userID uint, now time.Time) error
	UpsertReaction(storyID, userID uint, reaction string, now time.Time) error
	GetViewers(storyID uint) ([]models.StoryViewer, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

// CreateStory creates a new story
func (r *PostgresStoryRepository) CreateStory(story *models.Story) error {
	return r.db.Create(story).Error
}

// GetActiveStories returns all non-expired stories with author fields,
// oldest first
func (r *PostgresStoryRepository) GetActiveStories(now time.Time) ([]models.StoryWithAuthor, error) {
	var stories []models.StoryWithAuthor
	err := r.db.Model(&models.Story{}).
		Select("stories.*, users.username, users.avatar_url").
		Joins("JOIN users ON users.id = stories.user_id").
		Where("stories.expires_at > ?", now).
		Order("stories.created_at ASC").
		Scan(&stories).Error
	return stories, err
}

// GetStoryOwner returns the author of a story, or gorm.ErrRecordNotFound
func (r *PostgresStoryRepository) GetStoryOwner(storyID uint) (uint, error) {
	var story models.Story
	if err := r.db.Select("id, user_id").First(&story, storyID).Error; err != nil {
		return 0, err
	}
	return story.UserID, nil
}

// DeleteStory deletes a story only when owned by the given user
func (r *PostgresStoryRepository) DeleteStory(storyID, userID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", storyID, userID).Delete(&models.Story{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkViewed records the first view of a story by a user. A conflicting
// insert is a no-op so an existing reaction is never overwritten.
func (r *PostgresStoryRepository) MarkViewed(storyID, userID uint, now time.Time) error {
	interaction := models.StoryInteraction{StoryID: storyID, UserID: userID, ViewedAt: now}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&interaction).Error
}

// UpsertReaction sets the viewer's reaction, creating the interaction row if
// needed. Unlike MarkViewed, the update always takes effect.
func (r *PostgresStoryRepository) UpsertReaction(storyID, userID uint, reaction string, now time.Time) error {
	interaction := models.StoryInteraction{StoryID: storyID, UserID: userID, Reaction: reaction, ViewedAt: now}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"reaction": reaction, "viewed_at": now}),
	}).Create(&interaction).Error
}

// GetViewers returns a story's interactions joined to viewer identity, most
// recent view first
func (r *PostgresStoryRepository) GetViewers(storyID uint) ([]models.StoryViewer, error) {
	var viewers []models.StoryViewer
	err := r.db.Model(&models.StoryInteraction{}).
		Select("story_interactions.reaction, story_interactions.viewed_at, users.username, users.avatar_url").
		Joins("JOIN users ON users.id = story_interactions.user_id").
		Where("story_interactions.story_id = ?", storyID).
		Order("story_interactions.viewed_at DESC").
		Scan(&viewers).Error
	return viewers, err
}
