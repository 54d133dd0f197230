package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openblog/backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindByID returns a post by its ID, or (nil, nil) when it does not exist
func (r *PostRepo) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts matching the filter plus the total count
func (r *PostRepo) List(filter PostFilter, page, perPage int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Scopes(filter.Scope()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.Scopes(filter.Scope(), Paginate(page, perPage)).Preload("Tags").Find(&posts).Error
	return posts, total, err
}

// SearchPublished matches the term against title, summary and content of published posts
func (r *PostRepo) SearchPublished(term string, page, perPage int) ([]models.Post, int64, error) {
	pattern := "%" + term + "%"
	query := r.db.Model(&models.Post{}).
		Where("status = ?", models.PostStatusPublished).
		Where("title LIKE ? OR summary LIKE ? OR content LIKE ?", pattern, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Order("published_at DESC").Order("id ASC").
		Scopes(Paginate(page, perPage)).Find(&posts).Error
	return posts, total, err
}

// PublishedByAuthor returns the published posts owned by one user
func (r *PostRepo) PublishedByAuthor(userID uint, page, perPage int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).
		Where("user_id = ? AND status = ?", userID, models.PostStatusPublished)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Order("published_at DESC").Order("id ASC").
		Scopes(Paginate(page, perPage)).Find(&posts).Error
	return posts, total, err
}

// SlugsWithPrefix returns every slug starting with the given prefix
func (r *PostRepo) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.db.Model(&models.Post{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	return slugs, err
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Save updates an existing post in the database
func (r *PostRepo) Save(post *models.Post) error {
	return r.db.Save(post).Error
}

// SetStatus applies status and published_at together in a single row update
// so a failed transition never leaves a half-written state.
func (r *PostRepo) SetStatus(id uint, status string, publishedAt *time.Time) error {
	result := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"published_at": publishedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a post from the database by id
func (r *PostRepo) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// DuePosts returns every scheduled post whose publish time has passed
func (r *PostRepo) DuePosts(now time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Where("status = ? AND published_at <= ?", models.PostStatusScheduled, now).
		Find(&posts).Error
	return posts, err
}

// PromoteScheduled publishes one due post. The status guard in the WHERE
// clause keeps the sweeper from overwriting a manual publish or unpublish
// that raced it; the row update itself is atomic in the backing store.
func (r *PostRepo) PromoteScheduled(id uint, now time.Time) (bool, error) {
	result := r.db.Model(&models.Post{}).
		Where("id = ? AND status = ?", id, models.PostStatusScheduled).
		Updates(map[string]interface{}{
			"status":       models.PostStatusPublished,
			"published_at": now,
		})
	return result.RowsAffected > 0, result.Error
}
