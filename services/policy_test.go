package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openblog/backend/models"
)

func TestCanViewByStatusAndRole(t *testing.T) {
	published := &models.Post{Status: models.PostStatusPublished}
	draft := &models.Post{Status: models.PostStatusDraft}
	scheduled := &models.Post{Status: models.PostStatusScheduled}
	archived := &models.Post{Status: models.PostStatusArchived}

	tests := []struct {
		name  string
		actor *models.User
		post  *models.Post
		want  bool
	}{
		{"anonymous sees published", nil, published, true},
		{"anonymous blocked from draft", nil, draft, false},
		{"anonymous blocked from scheduled", nil, scheduled, false},
		{"anonymous blocked from archived", nil, archived, false},
		{"reader sees published", reader(1), published, true},
		{"reader blocked from draft", reader(1), draft, false},
		{"author blocked from another draft", author(1), draft, false},
		{"admin sees draft", admin(), draft, true},
		{"admin sees scheduled", admin(), scheduled, true},
		{"admin sees archived", admin(), archived, true},
		{"nil post never visible", admin(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.actor, tt.post))
		})
	}
}

func TestCanMutateMatrix(t *testing.T) {
	own := &models.Post{ID: 1, UserID: 10, Status: models.PostStatusDraft}
	other := &models.Post{ID: 2, UserID: 11, Status: models.PostStatusDraft}
	actions := []Action{ActionUpdate, ActionDelete, ActionPublish, ActionUnpublish, ActionSchedule}

	for _, action := range actions {
		assert.True(t, CanMutate(admin(), own, action), "admin %s own", action)
		assert.True(t, CanMutate(admin(), other, action), "admin %s other", action)

		assert.True(t, CanMutate(author(10), own, action), "author %s own", action)
		assert.False(t, CanMutate(author(10), other, action), "author %s other", action)

		assert.False(t, CanMutate(reader(10), own, action), "reader %s own", action)
		assert.False(t, CanMutate(nil, own, action), "anonymous %s", action)
	}
}

func TestCanMutateUnknownRole(t *testing.T) {
	ghost := &models.User{ID: 1, Role: "ghost"}
	post := &models.Post{ID: 1, UserID: 1}

	assert.False(t, CanMutate(ghost, post, ActionUpdate))
}

func TestCanCreatePost(t *testing.T) {
	assert.True(t, CanCreatePost(admin()))
	assert.True(t, CanCreatePost(author(2)))
	assert.False(t, CanCreatePost(reader(3)))
	assert.False(t, CanCreatePost(nil))
}

func TestCanMutateUser(t *testing.T) {
	target := &models.User{ID: 7, Role: models.RoleReader}

	assert.True(t, CanMutateUser(admin(), target))
	assert.True(t, CanMutateUser(reader(7), target))
	assert.False(t, CanMutateUser(reader(8), target))
	assert.False(t, CanMutateUser(author(8), target))
	assert.False(t, CanMutateUser(nil, target))
}

func TestCanSetRole(t *testing.T) {
	assert.True(t, CanSetRole(admin()))
	assert.False(t, CanSetRole(author(2)))
	assert.False(t, CanSetRole(reader(3)))
	assert.False(t, CanSetRole(nil))
}
