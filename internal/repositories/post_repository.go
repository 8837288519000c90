package repositories

import (
	"time"

	"github.com/devsocial/backend/internal/models"
	"gorm.io/gorm"
)

// feedSelect annotates each post with author fields and computed counters.
const feedSelect = `posts.*, users.username, users.avatar_url,
(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count,
(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count`

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPosts(category string) ([]models.PostWithMeta, error)
	GetPostsByUser(userID uint) ([]models.PostWithMeta, error)
	GetPostOwner(postID uint) (uint, error)
	IncrementViews(postID uint) error
	DeletePost(postID, userID uint) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
	CountByUser(userID uint) (int64, error)
	SearchPosts(query string, limit int) ([]models.PostWithMeta, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPosts returns all posts annotated with author fields and counters,
// newest first. An empty category means no filter.
func (r *PostgresPostRepository) GetPosts(category string) ([]models.PostWithMeta, error) {
	q := r.db.Model(&models.Post{}).
		Select(feedSelect).
		Joins("JOIN users ON users.id = posts.user_id")
	if category != "" {
		q = q.Where("posts.category = ?", category)
	}
	var posts []models.PostWithMeta
	err := q.Order("posts.created_at DESC").Scan(&posts).Error
	return posts, err
}

// GetPostsByUser returns one author's annotated posts, newest first
func (r *PostgresPostRepository) GetPostsByUser(userID uint) ([]models.PostWithMeta, error) {
	var posts []models.PostWithMeta
	err := r.db.Model(&models.Post{}).
		Select(feedSelect).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Scan(&posts).Error
	return posts, err
}

// GetPostOwner returns the author of a post, or gorm.ErrRecordNotFound
func (r *PostgresPostRepository) GetPostOwner(postID uint) (uint, error) {
	var post models.Post
	if err := r.db.Select("id, user_id").First(&post, postID).Error; err != nil {
		return 0, err
	}
	return post.UserID, nil
}

// IncrementViews increments the view counter; every call counts
func (r *PostgresPostRepository) IncrementViews(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// DeletePost deletes a post only when owned by the given user. Returns false
// when the row is missing or not owned by them.
func (r *PostgresPostRepository) DeletePost(postID, userID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", postID, userID).Delete(&models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteExpired removes every post whose expiry is in the past, regardless
// of owner, and returns the number of rows deleted. Posts with a null expiry
// are never touched.
func (r *PostgresPostRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at IS NOT NULL AND expires_at < ?", now).Delete(&models.Post{})
	return res.RowsAffected, res.Error
}

// CountByUser returns the number of posts authored by a user
func (r *PostgresPostRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SearchPosts performs a case-insensitive substring match against post
// content, newest first
func (r *PostgresPostRepository) SearchPosts(query string, limit int) ([]models.PostWithMeta, error) {
	var posts []models.PostWithMeta
	err := r.db.Model(&models.Post{}).
		Select(feedSelect).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("LOWER(posts.content) LIKE LOWER(?)", "%"+query+"%").
		Order("posts.created_at DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}
