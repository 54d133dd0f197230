package api

import (
	"github.com/openblog/backend/database"
	"github.com/openblog/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens TokenManager, clock services.Clock) *routeHandlers {
	posts := services.NewPostService(database.PostRepo(), database.CommentRepo(), database.TagRepo(), clock)
	users := services.NewUserService(database.UserRepo())

	return &routeHandlers{
		postHandler: newPostHandler(posts),
		userHandler: newUserHandler(users, tokens),
		authHandler: newAuthHandler(users, tokens),
	}
}
