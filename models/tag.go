package models

// Tag labels posts; posts and tags are linked many-to-many
type Tag struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`

	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_tags"`
}
