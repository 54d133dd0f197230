package services

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openblog/backend/database"
	"github.com/openblog/backend/errs"
	"github.com/openblog/backend/models"
)

// PostService owns the post lifecycle: creation, the named status
// transitions, and the read paths behind the listing endpoints. Every
// mutation passes the authorization predicate before any write happens.
type PostService struct {
	store    PostStore
	comments CommentStore
	tags     TagStore
	clock    Clock
	logger   zerolog.Logger
}

func NewPostService(store PostStore, comments CommentStore, tags TagStore, clock Clock) *PostService {
	return &PostService{
		store:    store,
		comments: comments,
		tags:     tags,
		clock:    clock,
		logger:   log.With().Str("serviceName", "postService").Logger(),
	}
}

// CreatePostInput carries the validated creation payload.
type CreatePostInput struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Summary      *string    `json:"summary,omitempty"`
	Author       string     `json:"author"`
	Status       string     `json:"status,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}

// UpdatePostInput carries a partial update; nil fields are left untouched.
// The slug is immutable and deliberately absent.
type UpdatePostInput struct {
	Title        *string    `json:"title,omitempty"`
	Content      *string    `json:"content,omitempty"`
	Summary      *string    `json:"summary,omitempty"`
	Author       *string    `json:"author,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

// Get returns one post, applying the visibility rule for the actor.
func (s *PostService) Get(actor *models.User, id uint) (*models.Post, error) {
	post, err := s.store.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("post")
	}
	if !CanView(actor, post) {
		return nil, errs.NewForbiddenError("you may not view this post")
	}
	return post, nil
}

// List returns one page of posts. Role sensitivity lives in the filter: it
// was parsed against the caller's role, so non-admins are already pinned to
// published posts here.
func (s *PostService) List(filter database.PostFilter, page, perPage int) ([]models.Post, int64, error) {
	posts, total, err := s.store.List(filter, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "posts", err)
	}
	return posts, total, nil
}

// Search matches a term against published posts only.
func (s *PostService) Search(term string, page, perPage int) ([]models.Post, int64, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, 0, errs.NewMissingRequiredFieldError("q")
	}
	posts, total, err := s.store.SearchPublished(term, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("search", "posts", err)
	}
	return posts, total, nil
}

// ByAuthor returns the published posts owned by one user.
func (s *PostService) ByAuthor(userID uint, page, perPage int) ([]models.Post, int64, error) {
	posts, total, err := s.store.PublishedByAuthor(userID, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "posts", err)
	}
	return posts, total, nil
}

// Comments returns one page of comments on a post the actor may view.
func (s *PostService) Comments(actor *models.User, postID uint, page, perPage int) ([]models.Comment, int64, error) {
	if _, err := s.Get(actor, postID); err != nil {
		return nil, 0, err
	}
	comments, total, err := s.comments.ForPost(postID, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "comments", err)
	}
	return comments, total, nil
}

// Tags returns the tags on a post the actor may view.
func (s *PostService) Tags(actor *models.User, postID uint) ([]models.Tag, error) {
	if _, err := s.Get(actor, postID); err != nil {
		return nil, err
	}
	tags, err := s.tags.ForPost(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "tags", err)
	}
	return tags, nil
}

// Create validates the payload, derives a unique slug from the title and
// stores the post. A post may start out draft, published or scheduled;
// archived is only reachable through Update.
func (s *PostService) Create(actor *models.User, input CreatePostInput) (*models.Post, error) {
	if !CanCreatePost(actor) {
		return nil, errs.NewForbiddenError("you may not create posts")
	}
	if input.Title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if input.Content == "" {
		return nil, errs.NewMissingRequiredFieldError("content")
	}
	if input.Author == "" {
		return nil, errs.NewMissingRequiredFieldError("author")
	}

	status := input.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		Title:   input.Title,
		Content: input.Content,
		Summary: input.Summary,
		Author:  input.Author,
		Status:  status,
		UserID:  actor.ID,
	}

	switch status {
	case models.PostStatusDraft:
		// published_at stays null
	case models.PostStatusPublished:
		now := s.clock.Now()
		post.PublishedAt = &now
	case models.PostStatusScheduled:
		if input.ScheduledFor == nil {
			return nil, errs.NewMissingRequiredFieldError("scheduledFor")
		}
		if !input.ScheduledFor.After(s.clock.Now()) {
			return nil, errs.NewInvalidScheduleTimeError("the scheduled time must be in the future")
		}
		post.PublishedAt = input.ScheduledFor
	default:
		return nil, errs.NewInvalidFieldError("status", "must be one of draft, published, scheduled")
	}

	slug, err := s.uniqueSlug(input.Title)
	if err != nil {
		return nil, errs.NewDatabaseError("derive slug for", "post", err)
	}
	post.Slug = slug

	for _, name := range input.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := s.tags.Ensure(name)
		if err != nil {
			return nil, errs.NewDatabaseError("attach tag to", "post", err)
		}
		post.Tags = append(post.Tags, *tag)
	}

	if err := s.store.Add(post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}

	s.logger.Info().Uint("postId", post.ID).Str("slug", post.Slug).Str("status", post.Status).Msg("post created")
	return post, nil
}

// Update applies a partial update. This is the generic path: it accepts any
// known status, including archived, while keeping the status/published_at
// invariants intact. The slug never changes.
func (s *PostService) Update(actor *models.User, id uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.authorized(actor, id, ActionUpdate)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Summary != nil {
		post.Summary = input.Summary
	}
	if input.Author != nil {
		post.Author = *input.Author
	}
	if input.Status != nil && *input.Status != post.Status {
		if !models.ValidPostStatus(*input.Status) {
			return nil, errs.NewInvalidFieldError("status", "unknown post status")
		}
		switch *input.Status {
		case models.PostStatusDraft:
			post.PublishedAt = nil
		case models.PostStatusPublished:
			now := s.clock.Now()
			post.PublishedAt = &now
		case models.PostStatusScheduled:
			at := input.ScheduledFor
			if at == nil {
				return nil, errs.NewMissingRequiredFieldError("scheduledFor")
			}
			if !at.After(s.clock.Now()) {
				return nil, errs.NewInvalidScheduleTimeError("the scheduled time must be in the future")
			}
			post.PublishedAt = at
		case models.PostStatusArchived:
			// terminal; keeps whatever published_at it had
		}
		post.Status = *input.Status
	}

	if err := s.store.Save(post); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}
	return post, nil
}

// Delete removes a post after the authorization gate.
func (s *PostService) Delete(actor *models.User, id uint) error {
	if _, err := s.authorized(actor, id, ActionDelete); err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "post", err)
	}
	return nil
}

// Publish makes a post visible immediately. Publishing an already published
// post overwrites published_at with the current time.
func (s *PostService) Publish(actor *models.User, id uint) (*models.Post, error) {
	post, err := s.authorized(actor, id, ActionPublish)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.store.SetStatus(id, models.PostStatusPublished, &now); err != nil {
		return nil, errs.NewDatabaseError("publish", "post", err)
	}
	post.Status = models.PostStatusPublished
	post.PublishedAt = &now

	s.logger.Info().Uint("postId", id).Msg("post published")
	return post, nil
}

// Unpublish sends a post back to draft and clears its publish time.
func (s *PostService) Unpublish(actor *models.User, id uint) (*models.Post, error) {
	post, err := s.authorized(actor, id, ActionUnpublish)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetStatus(id, models.PostStatusDraft, nil); err != nil {
		return nil, errs.NewDatabaseError("unpublish", "post", err)
	}
	post.Status = models.PostStatusDraft
	post.PublishedAt = nil

	s.logger.Info().Uint("postId", id).Msg("post unpublished")
	return post, nil
}

// Schedule queues a post for publication at a strictly future time. A past
// or present timestamp is rejected before any transition is attempted.
func (s *PostService) Schedule(actor *models.User, id uint, at time.Time) (*models.Post, error) {
	if !at.After(s.clock.Now()) {
		return nil, errs.NewInvalidScheduleTimeError("the scheduled time must be in the future")
	}

	post, err := s.authorized(actor, id, ActionSchedule)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetStatus(id, models.PostStatusScheduled, &at); err != nil {
		return nil, errs.NewDatabaseError("schedule", "post", err)
	}
	post.Status = models.PostStatusScheduled
	post.PublishedAt = &at

	s.logger.Info().Uint("postId", id).Time("scheduledFor", at).Msg("post scheduled")
	return post, nil
}

// authorized loads a post and runs the mutation gate; a denied result is
// terminal and nothing has been written yet.
func (s *PostService) authorized(actor *models.User, id uint, action Action) (*models.Post, error) {
	post, err := s.store.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("post")
	}
	if !CanMutate(actor, post, action) {
		return nil, errs.NewForbiddenError("you may not " + string(action) + " this post")
	}
	return post, nil
}

func (s *PostService) uniqueSlug(title string) (string, error) {
	base := Slugify(title)
	taken, err := s.store.SlugsWithPrefix(base)
	if err != nil {
		return "", err
	}
	return UniqueSlug(base, taken), nil
}
