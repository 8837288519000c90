package models

import "time"

// Story represents a short-lived publication. Expiry is enforced by query
// filters, not by the sweeper.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MediaType string    `json:"media_type" gorm:"size:10"` // "image" or "text"
	MediaURL  string    `json:"media_url"`
	Content   string    `json:"content"`
	Theme     string    `json:"theme" gorm:"size:30"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryWithAuthor is a story annotated with author fields
type StoryWithAuthor struct {
	Story
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// StoryInteraction tracks a single viewer's relationship with a story: at
// most one row per (story, user), created on first view, reaction updated in
// place afterwards.
type StoryInteraction struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	StoryID  uint      `json:"story_id" gorm:"index;uniqueIndex:idx_story_user"`
	Story    Story     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID   uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user"`
	User     User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reaction string    `json:"reaction" gorm:"size:20"`
	ViewedAt time.Time `json:"viewed_at"`
}

// StoryViewer is an interaction row joined to the viewer's identity
type StoryViewer struct {
	Reaction  string    `json:"reaction"`
	ViewedAt  time.Time `json:"viewed_at"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

// ReactToStoryRequest defines the request body for reacting to a story
type ReactToStoryRequest struct {
	Reaction string `json:"reaction" validate:"required,max=20"`
}
