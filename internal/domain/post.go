package domain

import "time"

// Post is a blog entry. Slug is the public lookup key and is unique
// across all posts; unpublished posts are visible to admins only.
type Post struct {
	ID            string
	Title         string
	Content       string
	Summary       string
	Slug          string
	AuthorID      string
	Tags          []string
	FeaturedImage string
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
