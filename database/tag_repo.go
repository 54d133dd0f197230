package database

import (
	"gorm.io/gorm"

	"github.com/openblog/backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// ForPost returns the tags attached to a post, sorted by name
func (r *TagRepo) ForPost(postID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// Ensure returns the tag with the given name, creating it when missing
func (r *TagRepo) Ensure(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
