package models

import "time"

// Media types a post can carry.
const (
	MediaText  = "text"
	MediaImage = "image"
	MediaAudio = "audio"
	MediaCode  = "code"
)

// Post represents a publication. ExpiresAt is nil for posts that never
// expire; the sweeper removes rows once it is in the past.
type Post struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index"`
	User         User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content      string     `json:"content"`
	MediaType    string     `json:"media_type" gorm:"size:10;default:text"`
	MediaURL     string     `json:"media_url"`
	CodeSnippet  string     `json:"code_snippet" gorm:"type:text"`
	CodeLanguage string     `json:"code_language" gorm:"size:30"`
	Category     string     `json:"category" gorm:"size:50;index"`
	Views        int        `json:"views" gorm:"default:0"`
	ExpiresAt    *time.Time `json:"expires_at" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
}

// PostWithMeta is a post annotated with author fields and the computed
// like/comment counters, as returned by the feed queries.
type PostWithMeta struct {
	Post
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	LikeCount     int    `json:"like_count"`
	CommentsCount int    `json:"comments_count"`
}
