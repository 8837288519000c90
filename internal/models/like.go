package models

import "time"

// Like represents a typed reaction on a post: at most one per (post, user),
// enforced by the unique index.
type Like struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PostID       uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	Post         Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	User         User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ReactionType string    `json:"reaction_type" gorm:"size:20"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReactRequest defines the request body for reacting to a post
type ReactRequest struct {
	Type string `json:"type" validate:"required,max=20"`
}
