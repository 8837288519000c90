package repositories

import (
	"time"

	"github.com/devsocial/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	IsTaken(username, email string) (bool, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	SetResetCode(email, code string, expires time.Time) error
	ResetPassword(email, code, newHash string, now time.Time) (bool, error)
	SearchUsers(query string, limit int) ([]models.UserCompact, error)
	GetUsersExcept(id uint) ([]models.UserCompact, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsTaken reports whether the username or email is already registered
func (r *PostgresUserRepository) IsTaken(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser deletes a user by ID; the store cascades dependent rows
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// SetResetCode stores a password reset code and its expiry for the account
func (r *PostgresUserRepository) SetResetCode(email, code string, expires time.Time) error {
	return r.db.Model(&models.User{}).Where("email = ?", email).
		Updates(map[string]interface{}{"reset_code": code, "reset_expires": expires}).Error
}

// ResetPassword applies the new password hash and clears the reset fields in
// a single statement, only when the code matches and has not expired.
// Returns false when no row matched.
func (r *PostgresUserRepository) ResetPassword(email, code, newHash string, now time.Time) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("email = ? AND reset_code = ? AND reset_expires > ?", email, code, now).
		Updates(map[string]interface{}{"password": newHash, "reset_code": "", "reset_expires": nil})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SearchUsers performs a case-insensitive substring match against usernames
func (r *PostgresUserRepository) SearchUsers(query string, limit int) ([]models.UserCompact, error) {
	var users []models.UserCompact
	err := r.db.Model(&models.User{}).
		Select("id, username, avatar_url").
		Where("LOWER(username) LIKE LOWER(?)", "%"+query+"%").
		Limit(limit).
		Scan(&users).Error
	return users, err
}

// GetUsersExcept lists every user except the given one, ordered by username
func (r *PostgresUserRepository) GetUsersExcept(id uint) ([]models.UserCompact, error) {
	var users []models.UserCompact
	err := r.db.Model(&models.User{}).
		Select("id, username, avatar_url").
		Where("id <> ?", id).
		Order("username ASC").
		Scan(&users).Error
	return users, err
}
