package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the authenticated admin surface.
// Public reads still run maybeAuthenticate so an admin caller keeps admin
// visibility on the shared listing routes.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.maybeAuthenticate)

		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())

		r.Get("/v1/posts", handlers.postHandler.listPosts())
		r.Get("/v1/posts/search", handlers.postHandler.searchPosts())
		r.Get("/v1/posts/author/{userID}", handlers.postHandler.postsByAuthor())
		r.Get("/v1/posts/{postID}", handlers.postHandler.getPost())
		r.Get("/v1/posts/{postID}/comments", handlers.postHandler.getComments())
		r.Get("/v1/posts/{postID}/tags", handlers.postHandler.getTags())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/v1/admin/posts", handlers.postHandler.listPosts())
		r.Get("/v1/admin/posts/status/{status}", handlers.postHandler.postsByStatus())
		r.Post("/v1/admin/posts", handlers.postHandler.createPost())
		r.Get("/v1/admin/posts/{postID}", handlers.postHandler.getPost())
		r.Put("/v1/admin/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/v1/admin/posts/{postID}", handlers.postHandler.deletePost())
		r.Post("/v1/admin/posts/{postID}/publish", handlers.postHandler.publishPost())
		r.Post("/v1/admin/posts/{postID}/unpublish", handlers.postHandler.unpublishPost())
		r.Post("/v1/admin/posts/{postID}/schedule", handlers.postHandler.schedulePost())

		r.Post("/v1/admin/authors", handlers.userHandler.createAuthor())

		// User administration is admin-only
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Get("/v1/admin/users", handlers.userHandler.listUsers())
			r.Post("/v1/admin/users", handlers.userHandler.createUser())
			r.Get("/v1/admin/users/{userID}", handlers.userHandler.getUser())
			r.Put("/v1/admin/users/{userID}", handlers.userHandler.updateUser())
			r.Delete("/v1/admin/users/{userID}", handlers.userHandler.deleteUser())
		})
	})
}
