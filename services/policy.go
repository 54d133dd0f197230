package services

import (
	"github.com/openblog/backend/models"
)

// Action names a post mutation gated by the authorization policy.
type Action string

const (
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionSchedule  Action = "schedule"
)

// mutationScope is how far a role's mutation rights reach.
type mutationScope int

const (
	scopeNone mutationScope = iota
	scopeOwn
	scopeAny
)

// postMutationPolicy is the permission matrix for post mutations, keyed by
// role and action. Keeping it as data makes the matrix auditable in one place.
var postMutationPolicy = map[string]map[Action]mutationScope{
	models.RoleAdmin: {
		ActionUpdate:    scopeAny,
		ActionDelete:    scopeAny,
		ActionPublish:   scopeAny,
		ActionUnpublish: scopeAny,
		ActionSchedule:  scopeAny,
	},
	models.RoleAuthor: {
		ActionUpdate:    scopeOwn,
		ActionDelete:    scopeOwn,
		ActionPublish:   scopeOwn,
		ActionUnpublish: scopeOwn,
		ActionSchedule:  scopeOwn,
	},
	models.RoleReader: {},
}

// CanView decides whether the actor may see the post. Anonymous and non-admin
// actors only see published posts; admins see every status.
func CanView(actor *models.User, post *models.Post) bool {
	if post == nil {
		return false
	}
	if actor != nil && actor.IsAdmin() {
		return true
	}
	return post.IsPublished()
}

// CanMutate decides whether the actor may apply the given action to the post.
// The decision is pure; callers must treat false as terminal.
func CanMutate(actor *models.User, post *models.Post, action Action) bool {
	if actor == nil || post == nil {
		return false
	}
	switch postMutationPolicy[actor.Role][action] {
	case scopeAny:
		return true
	case scopeOwn:
		return post.IsOwnedBy(actor.ID)
	default:
		return false
	}
}

// CanCreatePost decides whether the actor may create posts at all.
func CanCreatePost(actor *models.User) bool {
	if actor == nil {
		return false
	}
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleAuthor
}

// CanListAllUsers gates the unfiltered user listing.
func CanListAllUsers(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanMutateUser decides whether the actor may update or delete the target
// account: admins may touch anyone, everyone else only themselves.
func CanMutateUser(actor *models.User, target *models.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.ID == target.ID
}

// CanSetRole gates role assignment; a user must never elevate their own role.
func CanSetRole(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}
