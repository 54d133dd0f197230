package services

import (
	"time"

	"github.com/openblog/backend/database"
	"github.com/openblog/backend/models"
)

// PostStore is the persistence surface the post service relies on. The gorm
// repositories in the database package satisfy it; tests use in-memory fakes.
// A missing row is reported as (nil, nil), storage failures as a non-nil error.
type PostStore interface {
	FindByID(id uint) (*models.Post, error)
	List(filter database.PostFilter, page, perPage int) ([]models.Post, int64, error)
	SearchPublished(term string, page, perPage int) ([]models.Post, int64, error)
	PublishedByAuthor(userID uint, page, perPage int) ([]models.Post, int64, error)
	SlugsWithPrefix(prefix string) ([]string, error)
	Add(post *models.Post) error
	Save(post *models.Post) error
	// SetStatus applies status and published_at in one atomic row update.
	SetStatus(id uint, status string, publishedAt *time.Time) error
	Delete(id uint) error
}

// SweepStore is the slice of storage the scheduled-publish sweeper needs.
type SweepStore interface {
	DuePosts(now time.Time) ([]models.Post, error)
	// PromoteScheduled publishes one due post atomically. It returns false
	// when the post was no longer scheduled by the time the update ran.
	PromoteScheduled(id uint, now time.Time) (bool, error)
}

// CommentStore lists the read-only comment join for a post.
type CommentStore interface {
	ForPost(postID uint, page, perPage int) ([]models.Comment, int64, error)
}

// TagStore lists the tag join for a post and upserts tags by name.
type TagStore interface {
	ForPost(postID uint) ([]models.Tag, error)
	Ensure(name string) (*models.Tag, error)
}

// UserStore is the persistence surface the user service relies on.
type UserStore interface {
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List(filter database.UserFilter, page, perPage int) ([]models.User, int64, error)
	Add(user *models.User) error
	Save(user *models.User) error
	Delete(id uint) error
}
