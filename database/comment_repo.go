package database

import (
	"gorm.io/gorm"

	"github.com/openblog/backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// ForPost returns one page of comments on a post, newest first
func (r *CommentRepo) ForPost(postID uint, page, perPage int) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.Order("created_at DESC").Order("id ASC").
		Scopes(Paginate(page, perPage)).Find(&comments).Error
	return comments, total, err
}
