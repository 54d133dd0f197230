package database

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblog/backend/models"
)

func TestParseUserFilterPinsNonAdminsToActive(t *testing.T) {
	q := url.Values{}
	q.Set("status", models.UserStatusInactive)
	q.Set("role", models.RoleAdmin)

	f := ParseUserFilter(q, false)

	assert.Equal(t, models.UserStatusActive, f.Status)
	assert.Empty(t, f.Role)
}

func TestParseUserFilterAdminKeepsOverrides(t *testing.T) {
	q := url.Values{}
	q.Set("status", models.UserStatusInactive)
	q.Set("role", `"author"`)

	f := ParseUserFilter(q, true)

	assert.Equal(t, models.UserStatusInactive, f.Status)
	// Quoted role values are trimmed before matching.
	assert.Equal(t, models.RoleAuthor, f.Role)
}

func TestParseUserFilterDates(t *testing.T) {
	q := url.Values{}
	q.Set("created_from", "2025-01-15")
	q.Set("created_to", "not-a-date")

	f := ParseUserFilter(q, true)

	require.NotNil(t, f.CreatedFrom)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *f.CreatedFrom)
	assert.Nil(t, f.CreatedTo)
}

func TestParseUserFilterSortWhitelist(t *testing.T) {
	q := url.Values{}
	q.Set("sort_by", "email")
	q.Set("order", "DESC")

	f := ParseUserFilter(q, true)
	assert.Equal(t, "email", f.SortBy)
	assert.Equal(t, "desc", f.Order)

	q.Set("sort_by", "password")
	f = ParseUserFilter(q, true)
	assert.Empty(t, f.SortBy)
	assert.Empty(t, f.Order)
}

func TestParseUserFilterDefaultsOrderToAsc(t *testing.T) {
	q := url.Values{}
	q.Set("sort_by", "name")
	q.Set("order", "sideways")

	f := ParseUserFilter(q, true)
	assert.Equal(t, "name", f.SortBy)
	assert.Equal(t, "asc", f.Order)
}

func TestParsePostFilterPinsNonAdminsToPublished(t *testing.T) {
	q := url.Values{}
	q.Set("status", models.PostStatusDraft)

	f := ParsePostFilter(q, false)
	assert.Equal(t, models.PostStatusPublished, f.Status)
}

func TestParsePostFilterAdminStatus(t *testing.T) {
	q := url.Values{}
	q.Set("status", models.PostStatusScheduled)

	f := ParsePostFilter(q, true)
	assert.Equal(t, models.PostStatusScheduled, f.Status)

	// An unknown status is dropped rather than passed through.
	q.Set("status", "pending")
	f = ParsePostFilter(q, true)
	assert.Empty(t, f.Status)

	// No status at all means every status for an admin.
	f = ParsePostFilter(url.Values{}, true)
	assert.Empty(t, f.Status)
}

func TestParsePostFilterSortWhitelist(t *testing.T) {
	q := url.Values{}
	q.Set("sort_by", "views_count")
	q.Set("order", "desc")

	f := ParsePostFilter(q, true)
	assert.Equal(t, "views_count", f.SortBy)
	assert.Equal(t, "desc", f.Order)

	q.Set("sort_by", "content")
	f = ParsePostFilter(q, true)
	assert.Empty(t, f.SortBy)
}
