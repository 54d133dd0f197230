package database

import (
	"gorm.io/gorm"

	"github.com/openblog/backend/models"
)

type Database struct {
	db          *gorm.DB
	postRepo    *PostRepo
	userRepo    *UserRepo
	commentRepo *CommentRepo
	tagRepo     *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		postRepo:    NewPostRepo(db),
		userRepo:    NewUserRepo(db),
		commentRepo: NewCommentRepo(db),
		tagRepo:     NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// Migrate creates or updates the schema for every model.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
	)
}
