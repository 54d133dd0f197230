package database

import (
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/openblog/backend/models"
)

// Filters translate untrusted query parameters into a bounded set of
// predicates plus a sort directive. Parsing is role-sensitive: a non-admin
// caller can never widen visibility by supplying role/status overrides, and
// malformed values are dropped rather than failing the request. Every
// resulting order ends with `id ASC` so equal sort keys keep a stable order.

const dateLayout = "2006-01-02"

// userSortFields is the whitelist of user listing sort keys.
var userSortFields = map[string]bool{
	"name":       true,
	"email":      true,
	"created_at": true,
	"status":     true,
	"role":       true,
}

// postSortFields is the whitelist of post listing sort keys.
var postSortFields = map[string]bool{
	"title":        true,
	"created_at":   true,
	"published_at": true,
	"status":       true,
	"views_count":  true,
}

// UserFilter is the validated filter set for the user listing.
type UserFilter struct {
	Role        string
	Status      string
	Name        string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Search      string
	SortBy      string
	Order       string
}

// ParseUserFilter builds a UserFilter from raw query parameters. Non-admin
// callers are pinned to active users; their role and status parameters are
// discarded entirely.
func ParseUserFilter(q url.Values, isAdmin bool) UserFilter {
	f := UserFilter{
		Name:   q.Get("name"),
		Email:  q.Get("email"),
		Search: q.Get("search"),
	}

	if isAdmin {
		f.Role = strings.Trim(q.Get("role"), `"`)
		f.Status = q.Get("status")
	} else {
		f.Status = models.UserStatusActive
	}

	if from, err := time.Parse(dateLayout, q.Get("created_from")); err == nil {
		f.CreatedFrom = &from
	}
	if to, err := time.Parse(dateLayout, q.Get("created_to")); err == nil {
		f.CreatedTo = &to
	}

	f.SortBy, f.Order = parseSort(q, userSortFields)
	return f
}

// Scope returns the gorm scope applying the filter's predicates and ordering.
func (f UserFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Role != "" {
			db = db.Where("role = ?", f.Role)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Name != "" {
			db = db.Where("name LIKE ?", "%"+f.Name+"%")
		}
		if f.Email != "" {
			db = db.Where("email LIKE ?", "%"+f.Email+"%")
		}
		if f.CreatedFrom != nil {
			db = db.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			// Inclusive date bound: anything before the following midnight
			db = db.Where("created_at < ?", f.CreatedTo.AddDate(0, 0, 1))
		}
		if f.Search != "" {
			term := "%" + f.Search + "%"
			db = db.Where("name LIKE ? OR email LIKE ?", term, term)
		}
		if f.SortBy != "" {
			db = db.Order(f.SortBy + " " + f.Order)
		} else {
			db = db.Order("created_at DESC")
		}
		return db.Order("id ASC")
	}
}

// PostFilter is the validated filter set for the post listing.
type PostFilter struct {
	Status string
	SortBy string
	Order  string
}

// ParsePostFilter builds a PostFilter from raw query parameters. Non-admin
// callers are pinned to published posts regardless of any status parameter;
// admins may narrow to one known status.
func ParsePostFilter(q url.Values, isAdmin bool) PostFilter {
	f := PostFilter{}

	if isAdmin {
		if status := q.Get("status"); models.ValidPostStatus(status) {
			f.Status = status
		}
	} else {
		f.Status = models.PostStatusPublished
	}

	f.SortBy, f.Order = parseSort(q, postSortFields)
	return f
}

// Scope returns the gorm scope applying the filter's predicates and ordering.
func (f PostFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.SortBy != "" {
			db = db.Order(f.SortBy + " " + f.Order)
		} else {
			db = db.Order("published_at DESC")
		}
		return db.Order("id ASC")
	}
}

// parseSort validates sort_by against the whitelist; unknown fields fall back
// to the default ordering. Order is asc unless desc is asked for explicitly.
func parseSort(q url.Values, allowed map[string]bool) (sortBy, order string) {
	sortBy = q.Get("sort_by")
	if !allowed[sortBy] {
		return "", ""
	}
	order = "asc"
	if strings.EqualFold(q.Get("order"), "desc") {
		order = "desc"
	}
	return sortBy, order
}

// Paginate caps and applies page/per_page windows to a listing query.
func Paginate(page, perPage int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 15
		}
		if perPage > 100 {
			perPage = 100
		}
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}
