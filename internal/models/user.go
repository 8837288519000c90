package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account row. Password and reset fields are never
// serialized to clients.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:50"`
	Email        string     `json:"email" gorm:"uniqueIndex"`
	Password     string     `json:"-"` // bcrypt hash
	AvatarURL    string     `json:"avatar_url"`
	Bio          string     `json:"bio"`
	ResetCode    string     `json:"-" gorm:"size:8"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserCompact is the public subset of a user embedded in feeds, search
// results and viewer lists.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact strips a user down to its public fields
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest defines the request body for requesting a reset code
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the request body for applying a reset code
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=8"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}
