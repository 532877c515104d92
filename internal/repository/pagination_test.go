package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimitPageDefaults(t *testing.T) {
	tests := []struct {
		name      string
		opts      PageOptions
		wantLimit int
		wantPage  int
	}{
		{"empty", PageOptions{}, 10, 1},
		{"valid", PageOptions{Limit: "25", Page: "3"}, 25, 3},
		{"zero limit falls back", PageOptions{Limit: "0", Page: "2"}, 10, 2},
		{"negative falls back", PageOptions{Limit: "-5", Page: "-1"}, 10, 1},
		{"non-numeric falls back", PageOptions{Limit: "abc", Page: "xyz"}, 10, 1},
		{"whitespace tolerated", PageOptions{Limit: " 15 ", Page: " 2 "}, 15, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, page := parseLimitPage(tt.opts)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}

func TestBuildOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		want    string
		wantErr bool
	}{
		{"default", "", "created_at ASC", false},
		{"single asc", "name:asc", "name ASC", false},
		{"single desc", "email:desc", "email DESC", false},
		{"direction optional", "name", "name ASC", false},
		{"multiple pairs", "role:desc,createdAt:asc", "role DESC, created_at ASC", false},
		{"camelCase mapped", "updatedAt:desc", "updated_at DESC", false},
		{"unknown field", "password:asc", "", true},
		{"unknown direction", "name:sideways", "", true},
		{"one bad pair fails all", "name:asc,bogus:desc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildOrderBy(tt.sortBy)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSort)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, totalPages(25, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 5, totalPages(41, 10))
}

// Listing property: 25 users, limit=10, page=3 yields 5 results,
// totalPages=3, totalResults=25. The row slice itself comes from the
// database; the arithmetic is what is checked here.
func TestPaginationArithmetic(t *testing.T) {
	limit, page := parseLimitPage(PageOptions{Limit: "10", Page: "3"})
	offset := (page - 1) * limit
	total := 25

	assert.Equal(t, 20, offset)
	assert.Equal(t, 5, total-offset)
	assert.Equal(t, 3, totalPages(total, limit))
}
