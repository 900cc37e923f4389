package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"

	"academic-portfolio/internal/domain"
	"academic-portfolio/internal/repository"
)

// PostInput carries fields for creating a post. Slug is derived from the
// title when empty.
type PostInput struct {
	Title         string
	Content       string
	Summary       string
	Slug          string
	Tags          []string
	FeaturedImage string
	IsPublished   bool
}

// PostUpdate is a partial patch; nil fields are left untouched.
type PostUpdate struct {
	Title         *string
	Content       *string
	Summary       *string
	Slug          *string
	Tags          *[]string
	FeaturedImage *string
	IsPublished   *bool
}

// PostListOptions narrows and paginates a listing. Page is 1-indexed and
// PageSize is validated to [1,100] at the HTTP boundary.
type PostListOptions struct {
	Tag      string
	Search   string
	Page     int
	PageSize int
}

// PostList is one page of results together with pagination totals.
type PostList struct {
	Posts    []domain.Post
	Total    int64
	Page     int
	PageSize int
	Pages    int
}

// PostService coordinates post queries and admin-only mutations.
type PostService interface {
	List(ctx context.Context, opts PostListOptions, viewer *domain.User) (*PostList, error)
	GetBySlug(ctx context.Context, postSlug string, viewer *domain.User) (*domain.Post, error)
	Create(ctx context.Context, authorID string, input PostInput) (*domain.Post, error)
	Update(ctx context.Context, id string, update PostUpdate) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

// List returns published posts for anonymous and non-admin viewers; admins
// see every post. Results are newest first.
func (s *postService) List(ctx context.Context, opts PostListOptions, viewer *domain.User) (*PostList, error) {
	filter := repository.PostFilter{
		Tag:           opts.Tag,
		Search:        opts.Search,
		PublishedOnly: viewer == nil || !viewer.IsAdmin,
	}

	skip := (opts.Page - 1) * opts.PageSize
	posts, total, err := s.posts.List(ctx, filter, skip, opts.PageSize)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))

	return &PostList{
		Posts:    posts,
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Pages:    pages,
	}, nil
}

// GetBySlug masks unpublished posts as not found for non-admin viewers so
// their existence is never revealed.
func (s *postService) GetBySlug(ctx context.Context, postSlug string, viewer *domain.User) (*domain.Post, error) {
	post, err := s.posts.GetBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !post.IsPublished && (viewer == nil || !viewer.IsAdmin) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, authorID string, input PostInput) (*domain.Post, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.Content == "" {
		return nil, errors.New("content is required")
	}

	postSlug := input.Slug
	if postSlug == "" {
		postSlug = slug.Make(input.Title)
	}

	exists, err := s.posts.SlugExists(ctx, postSlug, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Field: "slug", Value: postSlug}
	}

	post := &domain.Post{
		Title:         input.Title,
		Content:       input.Content,
		Summary:       input.Summary,
		Slug:          postSlug,
		AuthorID:      authorID,
		Tags:          input.Tags,
		FeaturedImage: input.FeaturedImage,
		IsPublished:   input.IsPublished,
	}

	if _, err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Field: "slug", Value: postSlug}
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id string, update PostUpdate) (*domain.Post, error) {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Slug != nil && *update.Slug != "" {
		exists, err := s.posts.SlugExists(ctx, *update.Slug, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Field: "slug", Value: *update.Slug}
		}
	}

	patch := repository.PostPatch{
		Title:         update.Title,
		Content:       update.Content,
		Summary:       update.Summary,
		Slug:          update.Slug,
		Tags:          update.Tags,
		FeaturedImage: update.FeaturedImage,
		IsPublished:   update.IsPublished,
	}

	if err := s.posts.Update(ctx, id, patch); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, &ConflictError{Field: "slug"}
		default:
			return nil, err
		}
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
