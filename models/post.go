package models

import (
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// PostStatuses lists every status a post may carry.
var PostStatuses = []string{
	PostStatusDraft,
	PostStatusScheduled,
	PostStatusPublished,
	PostStatusArchived,
}

// Post represents a blog post with its publication state
type Post struct {
	ID          uint       `json:"id" db:"id" gorm:"primaryKey"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Content     string     `json:"content" db:"content" gorm:"type:text;not null"`
	Summary     *string    `json:"summary,omitempty" db:"summary" gorm:"type:text"`
	Author      string     `json:"author" db:"author" gorm:"type:text;not null"`
	Status      string     `json:"status" db:"status" gorm:"type:text;not null;default:draft;index"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp;index"`
	ViewsCount  int        `json:"viewsCount" db:"views_count" gorm:"type:integer;not null;default:0"`
	UserID      uint       `json:"userId" db:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
}

// IsPublished returns true if the post is visible to the public.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsScheduled returns true if the post is waiting for its publish time.
func (p *Post) IsScheduled() bool {
	return p.Status == PostStatusScheduled
}

// IsOwnedBy returns true if the post belongs to the given user.
func (p *Post) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}

// ValidPostStatus reports whether s is one of the known post statuses.
func ValidPostStatus(s string) bool {
	for _, known := range PostStatuses {
		if s == known {
			return true
		}
	}
	return false
}
