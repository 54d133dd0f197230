package models

import (
	"time"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleReader = "reader"
)

// User account statuses
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User represents a registered account
type User struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Password  string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null;default:reader;index"`
	Status    string    `json:"status" db:"status" gorm:"type:text;not null;default:active;index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleAuthor || s == RoleReader
}
