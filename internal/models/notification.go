package models

import "time"

// Notification types created by the handlers.
const (
	NotificationLike   = "like"
	NotificationFollow = "follow"
)

// Notification represents an entry in a user's notification feed, created as
// a side effect of likes and follows. Self-directed actions never notify.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"` // recipient
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ActorID   uint      `json:"actor_id" gorm:"index"`
	Actor     User      `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Type      string    `json:"type" gorm:"size:30;index"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// NotificationWithActor is a notification annotated with the actor's public
// fields so the client can render it without a second call.
type NotificationWithActor struct {
	Notification
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}
