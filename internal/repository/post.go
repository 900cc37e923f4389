package repository

import (
	"context"
	"errors"

	"academic-portfolio/internal/domain"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert or update violates a unique index.
var ErrDuplicate = errors.New("duplicate record")

// PostFilter narrows a post listing. Zero values mean "no restriction";
// PublishedOnly restricts to published posts when true.
type PostFilter struct {
	Tag           string
	Search        string
	PublishedOnly bool
}

// PostPatch carries a partial update; nil fields are left untouched.
type PostPatch struct {
	Title         *string
	Content       *string
	Summary       *string
	Slug          *string
	Tags          *[]string
	FeaturedImage *string
	IsPublished   *bool
}

// PostRepository defines persistence operations over the posts collection.
// List returns posts ordered by creation time descending, ties broken by
// insertion order, together with the total count matching the filter.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter, skip, limit int) ([]domain.Post, int64, error)
	Update(ctx context.Context, id string, patch PostPatch) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}
