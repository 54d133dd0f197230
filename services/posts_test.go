package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblog/backend/database"
	"github.com/openblog/backend/errs"
	"github.com/openblog/backend/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakePostStore struct {
	posts  map[uint]*models.Post
	nextID uint

	findErr error
	saveErr error
}

func newFakePostStore(posts ...*models.Post) *fakePostStore {
	s := &fakePostStore{posts: make(map[uint]*models.Post), nextID: 1}
	for _, p := range posts {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		s.posts[p.ID] = p
	}
	return s
}

func (s *fakePostStore) FindByID(id uint) (*models.Post, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.posts[id], nil
}

func (s *fakePostStore) List(filter database.PostFilter, page, perPage int) ([]models.Post, int64, error) {
	var out []models.Post
	for _, p := range s.posts {
		if filter.Status == "" || p.Status == filter.Status {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakePostStore) SearchPublished(term string, page, perPage int) ([]models.Post, int64, error) {
	var out []models.Post
	for _, p := range s.posts {
		if p.IsPublished() {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakePostStore) PublishedByAuthor(userID uint, page, perPage int) ([]models.Post, int64, error) {
	var out []models.Post
	for _, p := range s.posts {
		if p.IsPublished() && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakePostStore) SlugsWithPrefix(prefix string) ([]string, error) {
	var out []string
	for _, p := range s.posts {
		if len(p.Slug) >= len(prefix) && p.Slug[:len(prefix)] == prefix {
			out = append(out, p.Slug)
		}
	}
	return out, nil
}

func (s *fakePostStore) Add(post *models.Post) error {
	post.ID = s.nextID
	s.nextID++
	s.posts[post.ID] = post
	return nil
}

func (s *fakePostStore) Save(post *models.Post) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.posts[post.ID] = post
	return nil
}

func (s *fakePostStore) SetStatus(id uint, status string, publishedAt *time.Time) error {
	post, ok := s.posts[id]
	if !ok {
		return errors.New("record not found")
	}
	post.Status = status
	post.PublishedAt = publishedAt
	return nil
}

func (s *fakePostStore) Delete(id uint) error {
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) DuePosts(now time.Time) ([]models.Post, error) {
	var due []models.Post
	for _, p := range s.posts {
		if p.IsScheduled() && p.PublishedAt != nil && !p.PublishedAt.After(now) {
			due = append(due, *p)
		}
	}
	return due, nil
}

func (s *fakePostStore) PromoteScheduled(id uint, now time.Time) (bool, error) {
	post, ok := s.posts[id]
	if !ok || !post.IsScheduled() {
		return false, nil
	}
	post.Status = models.PostStatusPublished
	post.PublishedAt = &now
	return true, nil
}

type fakeCommentStore struct {
	comments map[uint][]models.Comment
}

func (s *fakeCommentStore) ForPost(postID uint, page, perPage int) ([]models.Comment, int64, error) {
	out := s.comments[postID]
	return out, int64(len(out)), nil
}

type fakeTagStore struct {
	tags    map[uint][]models.Tag
	ensured []string
}

func (s *fakeTagStore) ForPost(postID uint) ([]models.Tag, error) {
	return s.tags[postID], nil
}

func (s *fakeTagStore) Ensure(name string) (*models.Tag, error) {
	s.ensured = append(s.ensured, name)
	return &models.Tag{ID: uint(len(s.ensured)), Name: name}, nil
}

func newTestPostService(store *fakePostStore, clock Clock) *PostService {
	return NewPostService(store, &fakeCommentStore{comments: map[uint][]models.Comment{}}, &fakeTagStore{tags: map[uint][]models.Tag{}}, clock)
}

func admin() *models.User {
	return &models.User{ID: 1, Role: models.RoleAdmin, Status: models.UserStatusActive}
}

func author(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleAuthor, Status: models.UserStatusActive}
}

func reader(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleReader, Status: models.UserStatusActive}
}

func TestCreatePostDefaultsToDraft(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newFakePostStore()
	svc := newTestPostService(store, clock)

	post, err := svc.Create(author(7), CreatePostInput{
		Title:   "Hello World",
		Content: "body",
		Author:  "Jo Writer",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, uint(7), post.UserID)
}

func TestCreatePostPublishedStampsNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: now})

	post, err := svc.Create(admin(), CreatePostInput{
		Title:   "Launch",
		Content: "body",
		Author:  "Jo Writer",
		Status:  models.PostStatusPublished,
	})
	require.NoError(t, err)

	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, now, *post.PublishedAt)
}

func TestCreatePostScheduledRequiresFutureTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: now})

	past := now.Add(-time.Hour)
	_, err := svc.Create(admin(), CreatePostInput{
		Title:        "Too Late",
		Content:      "body",
		Author:       "Jo Writer",
		Status:       models.PostStatusScheduled,
		ScheduledFor: &past,
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidScheduleTime(err))

	_, err = svc.Create(admin(), CreatePostInput{
		Title:   "No Time At All",
		Content: "body",
		Author:  "Jo Writer",
		Status:  models.PostStatusScheduled,
	})
	require.Error(t, err)

	future := now.Add(time.Hour)
	post, err := svc.Create(admin(), CreatePostInput{
		Title:        "Right On Time",
		Content:      "body",
		Author:       "Jo Writer",
		Status:       models.PostStatusScheduled,
		ScheduledFor: &future,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusScheduled, post.Status)
	assert.Equal(t, future, *post.PublishedAt)
}

func TestCreatePostRejectsArchived(t *testing.T) {
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: time.Now()})

	_, err := svc.Create(admin(), CreatePostInput{
		Title:   "Born Dead",
		Content: "body",
		Author:  "Jo Writer",
		Status:  models.PostStatusArchived,
	})
	require.Error(t, err)
}

func TestCreatePostDeduplicatesSlug(t *testing.T) {
	store := newFakePostStore(
		&models.Post{Slug: "hello-world", Title: "Hello World", Status: models.PostStatusPublished},
		&models.Post{Slug: "hello-world-2", Title: "Hello World", Status: models.PostStatusDraft},
	)
	svc := newTestPostService(store, &fakeClock{now: time.Now()})

	post, err := svc.Create(admin(), CreatePostInput{
		Title:   "Hello World",
		Content: "body",
		Author:  "Jo Writer",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-3", post.Slug)
}

func TestCreatePostDeniedForReaderAndAnonymous(t *testing.T) {
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: time.Now()})
	input := CreatePostInput{Title: "Nope", Content: "body", Author: "Jo Writer"}

	_, err := svc.Create(reader(3), input)
	assert.True(t, errs.IsForbidden(err))

	_, err = svc.Create(nil, input)
	assert.True(t, errs.IsForbidden(err))
}

func TestGetHidesUnpublishedFromNonAdmins(t *testing.T) {
	draft := &models.Post{ID: 1, Slug: "wip", Status: models.PostStatusDraft, UserID: 5}
	svc := newTestPostService(newFakePostStore(draft), &fakeClock{now: time.Now()})

	_, err := svc.Get(nil, 1)
	assert.True(t, errs.IsForbidden(err))

	_, err = svc.Get(reader(3), 1)
	assert.True(t, errs.IsForbidden(err))

	got, err := svc.Get(admin(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestGetMissingPostIsNotFound(t *testing.T) {
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: time.Now()})

	_, err := svc.Get(admin(), 42)
	assert.True(t, errs.IsNotFound(err))
}

func TestUpdateDeniedForNonOwner(t *testing.T) {
	post := &models.Post{ID: 1, Slug: "mine", Status: models.PostStatusDraft, UserID: 5}
	svc := newTestPostService(newFakePostStore(post), &fakeClock{now: time.Now()})

	title := "Stolen"
	_, err := svc.Update(author(6), 1, UpdatePostInput{Title: &title})
	assert.True(t, errs.IsForbidden(err))

	updated, err := svc.Update(author(5), 1, UpdatePostInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Stolen", updated.Title)
}

func TestUpdateStatusKeepsPublishedAtInvariants(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	published := now.Add(-24 * time.Hour)
	post := &models.Post{ID: 1, Slug: "live", Status: models.PostStatusPublished, PublishedAt: &published, UserID: 5}
	svc := newTestPostService(newFakePostStore(post), &fakeClock{now: now})

	toDraft := models.PostStatusDraft
	updated, err := svc.Update(author(5), 1, UpdatePostInput{Status: &toDraft})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, updated.Status)
	assert.Nil(t, updated.PublishedAt)

	toPublished := models.PostStatusPublished
	updated, err = svc.Update(author(5), 1, UpdatePostInput{Status: &toPublished})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, now, *updated.PublishedAt)

	toArchived := models.PostStatusArchived
	updated, err = svc.Update(author(5), 1, UpdatePostInput{Status: &toArchived})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusArchived, updated.Status)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, now, *updated.PublishedAt)
}

func TestUpdateScheduledStatusRequiresFutureTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := &models.Post{ID: 1, Slug: "wip", Status: models.PostStatusDraft, UserID: 5}
	svc := newTestPostService(newFakePostStore(post), &fakeClock{now: now})

	toScheduled := models.PostStatusScheduled
	_, err := svc.Update(author(5), 1, UpdatePostInput{Status: &toScheduled})
	require.Error(t, err)

	past := now.Add(-time.Minute)
	_, err = svc.Update(author(5), 1, UpdatePostInput{Status: &toScheduled, ScheduledFor: &past})
	assert.True(t, errs.IsInvalidScheduleTime(err))
}

func TestPublishOverwritesTimestampOnRepublish(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	post := &models.Post{ID: 1, Slug: "live", Status: models.PostStatusDraft, UserID: 5}
	store := newFakePostStore(post)
	svc := newTestPostService(store, clock)

	first, err := svc.Publish(author(5), 1)
	require.NoError(t, err)
	firstTime := *first.PublishedAt

	clock.now = clock.now.Add(2 * time.Hour)
	second, err := svc.Publish(author(5), 1)
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusPublished, second.Status)
	assert.True(t, second.PublishedAt.After(firstTime))
}

func TestUnpublishReturnsToDraftAndClearsTimestamp(t *testing.T) {
	now := time.Now()
	post := &models.Post{ID: 1, Slug: "live", Status: models.PostStatusPublished, PublishedAt: &now, UserID: 5}
	store := newFakePostStore(post)
	svc := newTestPostService(store, &fakeClock{now: now})

	updated, err := svc.Unpublish(author(5), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, updated.Status)
	assert.Nil(t, updated.PublishedAt)
	assert.Nil(t, store.posts[1].PublishedAt)
}

func TestScheduleRejectsPastTimeBeforeLookup(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// The store is empty; a past time must fail on the time check, not 404.
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: now})

	_, err := svc.Schedule(admin(), 42, now.Add(-time.Minute))
	assert.True(t, errs.IsInvalidScheduleTime(err))

	_, err = svc.Schedule(admin(), 42, now)
	assert.True(t, errs.IsInvalidScheduleTime(err))
}

func TestScheduleSetsStatusAndTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := &models.Post{ID: 1, Slug: "soon", Status: models.PostStatusDraft, UserID: 5}
	store := newFakePostStore(post)
	svc := newTestPostService(store, &fakeClock{now: now})

	at := now.Add(48 * time.Hour)
	updated, err := svc.Schedule(author(5), 1, at)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusScheduled, updated.Status)
	assert.Equal(t, at, *updated.PublishedAt)
	assert.Equal(t, models.PostStatusScheduled, store.posts[1].Status)
}

func TestDeleteDeniedForReader(t *testing.T) {
	post := &models.Post{ID: 1, Slug: "keep", Status: models.PostStatusPublished, UserID: 5}
	store := newFakePostStore(post)
	svc := newTestPostService(store, &fakeClock{now: time.Now()})

	err := svc.Delete(reader(5), 1)
	assert.True(t, errs.IsForbidden(err))
	assert.Contains(t, store.posts, uint(1))

	err = svc.Delete(admin(), 1)
	require.NoError(t, err)
	assert.NotContains(t, store.posts, uint(1))
}

func TestSearchRequiresTerm(t *testing.T) {
	svc := newTestPostService(newFakePostStore(), &fakeClock{now: time.Now()})

	_, _, err := svc.Search("   ", 1, 15)
	require.Error(t, err)
}

func TestCreatePostAttachesTags(t *testing.T) {
	store := newFakePostStore()
	tags := &fakeTagStore{tags: map[uint][]models.Tag{}}
	svc := NewPostService(store, &fakeCommentStore{}, tags, &fakeClock{now: time.Now()})

	post, err := svc.Create(admin(), CreatePostInput{
		Title:   "Tagged",
		Content: "body",
		Author:  "Jo Writer",
		Tags:    []string{"go", "  ", "web"},
	})
	require.NoError(t, err)
	assert.Len(t, post.Tags, 2)
	assert.Equal(t, []string{"go", "web"}, tags.ensured)
}
