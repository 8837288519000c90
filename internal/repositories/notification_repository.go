package repositories

import (
	"github.com/devsocial/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetRecent(userID uint, limit int) ([]models.NotificationWithActor, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkAllAsRead(userID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetRecent returns the most recent notifications, newest first, each row
// carrying its read flag and actor fields.
func (r *postgresNotificationRepository) GetRecent(userID uint, limit int) ([]models.NotificationWithActor, error) {
	var notifications []models.NotificationWithActor
	err := r.db.Model(&models.Notification{}).
		Select("notifications.*, users.username, users.avatar_url").
		Joins("JOIN users ON users.id = notifications.actor_id").
		Where("notifications.user_id = ?", userID).
		Order("notifications.created_at DESC").
		Limit(limit).
		Scan(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
