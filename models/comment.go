package models

import (
	"time"
)

// Comment represents a reader comment attached to a post
type Comment struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" db:"post_id" gorm:"not null;index"`
	Author    string    `json:"author" db:"author" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
}
