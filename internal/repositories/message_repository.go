package repositories

import (
	"github.com/devsocial/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetConversation(selfID, otherID uint) ([]models.Message, error)
	GetPartners(selfID uint) ([]models.UserCompact, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage persists a direct message
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetConversation returns the messages exchanged between two users in either
// direction, oldest first
func (r *PostgresMessageRepository) GetConversation(selfID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			selfID, otherID, otherID, selfID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetPartners returns the distinct users that appear as sender or receiver
// in the caller's messages, excluding the caller
func (r *PostgresMessageRepository) GetPartners(selfID uint) ([]models.UserCompact, error) {
	var users []models.UserCompact
	err := r.db.Model(&models.Message{}).
		Select("DISTINCT users.id, users.username, users.avatar_url").
		Joins("JOIN users ON users.id = messages.sender_id OR users.id = messages.receiver_id").
		Where("(messages.sender_id = ? OR messages.receiver_id = ?) AND users.id <> ?",
			selfID, selfID, selfID).
		Scan(&users).Error
	return users, err
}
