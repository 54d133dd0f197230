package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"Café au Lait", "cafe-au-lait"},
		{"Über-Straße", "uber-strae"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER CASE", "upper-case"},
		{"100% Go", "100-go"},
		{"---", "post"},
		{"", "post"},
		{"日本語", "post"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestUniqueSlug(t *testing.T) {
	assert.Equal(t, "hello", UniqueSlug("hello", nil))
	assert.Equal(t, "hello-2", UniqueSlug("hello", []string{"hello"}))
	assert.Equal(t, "hello-3", UniqueSlug("hello", []string{"hello", "hello-2"}))
	assert.Equal(t, "hello-2", UniqueSlug("hello", []string{"hello", "hello-3"}))
	assert.Equal(t, "hello", UniqueSlug("hello", []string{"hello-2"}))
}
