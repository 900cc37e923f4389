package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"academic-portfolio/internal/domain"
	"academic-portfolio/internal/repository"
)

var (
	adminViewer  = &domain.User{ID: "a1", IsAdmin: true}
	normalViewer = &domain.User{ID: "u1"}
)

func TestPostService_List_VisibilityByViewer(t *testing.T) {
	tests := []struct {
		name          string
		viewer        *domain.User
		publishedOnly bool
	}{
		{"anonymous", nil, true},
		{"non-admin", normalViewer, true},
		{"admin", adminViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			svc := NewPostService(repo)

			repo.On("List", mock.Anything, repository.PostFilter{PublishedOnly: tt.publishedOnly}, 0, 10).
				Return([]domain.Post{}, int64(0), nil).Once()

			_, err := svc.List(context.Background(), PostListOptions{Page: 1, PageSize: 10}, tt.viewer)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_List_FilterAndSkip(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	expected := repository.PostFilter{Tag: "math", Search: "fourier", PublishedOnly: true}
	repo.On("List", mock.Anything, expected, 20, 10).
		Return([]domain.Post{{ID: "p1"}}, int64(21), nil).Once()

	list, err := svc.List(context.Background(), PostListOptions{Tag: "math", Search: "fourier", Page: 3, PageSize: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(21), list.Total)
	assert.Equal(t, 3, list.Pages)
	repo.AssertExpectations(t)
}

func TestPostService_List_PagesMath(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		pages    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{25, 10, 3},
		{100, 100, 1},
	}

	for _, tt := range tests {
		repo := new(MockPostRepository)
		svc := NewPostService(repo)

		repo.On("List", mock.Anything, mock.Anything, 0, tt.pageSize).
			Return([]domain.Post{}, tt.total, nil).Once()

		list, err := svc.List(context.Background(), PostListOptions{Page: 1, PageSize: tt.pageSize}, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.pages, list.Pages, "total=%d page_size=%d", tt.total, tt.pageSize)
	}
}

func TestPostService_GetBySlug_MasksUnpublished(t *testing.T) {
	unpublished := &domain.Post{ID: "p1", Slug: "draft-post", IsPublished: false}

	repo := new(MockPostRepository)
	svc := NewPostService(repo)
	repo.On("GetBySlug", mock.Anything, "draft-post").Return(unpublished, nil)

	_, err := svc.GetBySlug(context.Background(), "draft-post", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBySlug(context.Background(), "draft-post", normalViewer)
	assert.ErrorIs(t, err, ErrNotFound)

	post, err := svc.GetBySlug(context.Background(), "draft-post", adminViewer)
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
}

func TestPostService_GetBySlug_Published(t *testing.T) {
	published := &domain.Post{ID: "p1", Slug: "hello", IsPublished: true}

	repo := new(MockPostRepository)
	svc := NewPostService(repo)
	repo.On("GetBySlug", mock.Anything, "hello").Return(published, nil)

	post, err := svc.GetBySlug(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
}

func TestPostService_Create_DerivesSlug(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("SlugExists", mock.Anything, "understanding-fourier-transforms", "").Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Post")).Return("p1", nil).Once()

	post, err := svc.Create(context.Background(), "a1", PostInput{
		Title:   "Understanding Fourier Transforms",
		Content: "# Fourier Transforms",
	})
	require.NoError(t, err)
	assert.Equal(t, "understanding-fourier-transforms", post.Slug)
	assert.Equal(t, "a1", post.AuthorID)
	repo.AssertExpectations(t)
}

func TestPostService_Create_SlugConflict(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("SlugExists", mock.Anything, "taken", "").Return(true, nil).Once()

	_, err := svc.Create(context.Background(), "a1", PostInput{Title: "Some Title", Content: "body", Slug: "taken"})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "slug", conflict.Field)
	repo.AssertExpectations(t)
}

func TestPostService_Update_SlugConflictExcludesSelf(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	newSlug := "new-slug"
	repo.On("GetByID", mock.Anything, "p1").Return(&domain.Post{ID: "p1"}, nil).Once()
	repo.On("SlugExists", mock.Anything, "new-slug", "p1").Return(true, nil).Once()

	_, err := svc.Update(context.Background(), "p1", PostUpdate{Slug: &newSlug})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	repo.AssertExpectations(t)
}

func TestPostService_Update_NotFound(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

	_, err := svc.Update(context.Background(), "missing", PostUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertExpectations(t)
}

func TestPostService_Update_PartialPatch(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	published := true
	repo.On("GetByID", mock.Anything, "p1").Return(&domain.Post{ID: "p1", Title: "Old"}, nil).Once()
	repo.On("Update", mock.Anything, "p1", repository.PostPatch{IsPublished: &published}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, "p1").Return(&domain.Post{ID: "p1", Title: "Old", IsPublished: true}, nil).Once()

	post, err := svc.Update(context.Background(), "p1", PostUpdate{IsPublished: &published})
	require.NoError(t, err)
	assert.True(t, post.IsPublished)
	assert.Equal(t, "Old", post.Title)
	repo.AssertExpectations(t)
}

func TestPostService_Delete_NotFound(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("Delete", mock.Anything, "missing").Return(repository.ErrNotFound).Once()

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertExpectations(t)
}
