package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openblog/backend/database"
	"github.com/openblog/backend/errs"
	"github.com/openblog/backend/services"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *services.PostService
}

func newPostHandler(posts *services.PostService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// isAdminRequest reports whether the request carries an admin identity
func isAdminRequest(r *http.Request) bool {
	user := userFromCtx(r.Context())
	return user != nil && user.IsAdmin()
}

// listPosts returns one page of posts
// @Summary List posts
// @Description Lists posts visible to the caller; non-admin callers only ever see published posts
// @Tags Posts
// @Produce json
// @Param status query string false "Status filter (admin only)"
// @Param sort_by query string false "Sort field"
// @Param order query string false "asc or desc"
// @Success 200 {object} Page "Page of posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /v1/posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.ParsePostFilter(q, isAdminRequest(r))
		page, perPage := parsePagination(q)

		posts, total, err := h.posts.List(filter, page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Posts fetched successfully", Page{
			Items:   posts,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// postsByStatus lists posts in one status; the status filter only takes
// effect for admin callers
// @Summary List posts by status
// @Tags Posts
// @Produce json
// @Param status path string true "Post status"
// @Success 200 {object} Page "Page of posts"
// @Router /v1/admin/posts/status/{status} [get]
func (h postHandler) postsByStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set("status", chi.URLParam(r, "status"))
		filter := database.ParsePostFilter(q, isAdminRequest(r))
		page, perPage := parsePagination(q)

		posts, total, err := h.posts.List(filter, page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Posts fetched successfully", Page{
			Items:   posts,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// searchPosts matches a term against published posts
// @Summary Search posts
// @Tags Posts
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} Page "Page of matching posts"
// @Router /v1/posts/search [get]
func (h postHandler) searchPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, perPage := parsePagination(q)

		posts, total, err := h.posts.Search(q.Get("q"), page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Posts fetched successfully", Page{
			Items:   posts,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// postsByAuthor lists the published posts of one author
// @Summary List posts by author
// @Tags Posts
// @Produce json
// @Param userID path int true "Author user ID"
// @Success 200 {object} Page "Page of posts"
// @Router /v1/posts/author/{userID} [get]
func (h postHandler) postsByAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		page, perPage := parsePagination(r.URL.Query())

		posts, total, err := h.posts.ByAuthor(userID, page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Posts fetched successfully", Page{
			Items:   posts,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// getPost returns one post
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param postID path int true "Post ID"
// @Success 200 {object} models.Post "Post details"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /v1/posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Get(userFromCtx(r.Context()), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Post found", post)
	}
}

// getComments returns one page of comments on a post
// @Summary Get post comments
// @Tags Posts
// @Produce json
// @Param postID path int true "Post ID"
// @Success 200 {object} Page "Page of comments"
// @Router /v1/posts/{postID}/comments [get]
func (h postHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		page, perPage := parsePagination(r.URL.Query())

		comments, total, err := h.posts.Comments(userFromCtx(r.Context()), postID, page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Comments fetched", Page{
			Items:   comments,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// getTags returns the tags on a post
// @Summary Get post tags
// @Tags Posts
// @Produce json
// @Param postID path int true "Post ID"
// @Success 200 {object} []models.Tag "Tags"
// @Router /v1/posts/{postID}/tags [get]
func (h postHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tags, err := h.posts.Tags(userFromCtx(r.Context()), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Tags fetched", tags)
	}
}

// createPost creates a new post
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body services.CreatePostInput true "Post data"
// @Success 201 {object} models.Post "Created post"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Router /v1/admin/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.CreatePostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post", err))
			return
		}

		post, err := h.posts.Create(userFromCtx(r.Context()), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "Post created successfully", post)
	}
}

// updatePost applies a partial update to a post
// @Summary Update post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path int true "Post ID"
// @Param post body services.UpdatePostInput true "Fields to update"
// @Success 200 {object} models.Post "Updated post"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /v1/admin/posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.UpdatePostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post", err))
			return
		}

		post, err := h.posts.Update(userFromCtx(r.Context()), postID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Post updated successfully", post)
	}
}

// deletePost removes a post
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param postID path int true "Post ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /v1/admin/posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.Delete(userFromCtx(r.Context()), postID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Post deleted successfully", nil)
	}
}

// publishPost makes a post visible immediately
// @Summary Publish post
// @Tags Posts
// @Produce json
// @Param postID path int true "Post ID"
// @Success 200 {object} models.Post "Published post"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /v1/admin/posts/{postID}/publish [post]
func (h postHandler) publishPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Publish(userFromCtx(r.Context()), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Post published successfully", post)
	}
}

// unpublishPost sends a post back to draft
// @Summary Unpublish post
// @Tags Posts
// @Produce json
// @Param postID path int true "Post ID"
// @Success 200 {object} models.Post "Draft post"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /v1/admin/posts/{postID}/unpublish [post]
func (h postHandler) unpublishPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Unpublish(userFromCtx(r.Context()), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Post unpublished successfully", post)
	}
}

type schedulePostRequest struct {
	ScheduledFor time.Time `json:"scheduledFor"`
}

// schedulePost queues a post for publication at a future time
// @Summary Schedule post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path int true "Post ID"
// @Param schedule body schedulePostRequest true "Publish time, must be in the future"
// @Success 200 {object} models.Post "Scheduled post"
// @Failure 422 {object} ErrorResponse "Invalid schedule time"
// @Router /v1/admin/posts/{postID}/schedule [post]
func (h postHandler) schedulePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input schedulePostRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode schedule request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("schedule", err))
			return
		}
		if input.ScheduledFor.IsZero() {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("scheduledFor"))
			return
		}

		post, err := h.posts.Schedule(userFromCtx(r.Context()), postID, input.ScheduledFor)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Post scheduled successfully", post)
	}
}
