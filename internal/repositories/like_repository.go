package repositories

import (
	"github.com/devsocial/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for reaction data operations
type LikeRepository interface {
	GetLike(postID, userID uint) (*models.Like, error)
	CreateLike(like *models.Like) error
	UpdateReaction(postID, userID uint, reactionType string) error
	DeleteLike(postID, userID uint) error
	GetLikesCountByPostID(postID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// GetLike retrieves a user's reaction on a post, or gorm.ErrRecordNotFound
func (r *PostgresLikeRepository) GetLike(postID, userID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// CreateLike creates a new reaction
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// UpdateReaction changes the reaction type in place
func (r *PostgresLikeRepository) UpdateReaction(postID, userID uint, reactionType string) error {
	return r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Update("reaction_type", reactionType).Error
}

// DeleteLike removes a user's reaction from a post
func (r *PostgresLikeRepository) DeleteLike(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{}).Error
}

// GetLikesCountByPostID retrieves the count of reactions for a post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
