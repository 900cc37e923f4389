package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"academic-portfolio/internal/domain"
	"academic-portfolio/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	slug TEXT NOT NULL UNIQUE,
	author_id TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	featured_image TEXT NOT NULL DEFAULT '',
	is_published INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (string, error) {
	now := time.Now().UTC()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = now
	post.UpdatedAt = now

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return "", err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO posts (id, title, content, summary, slug, author_id, tags, featured_image, is_published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.Title,
		post.Content,
		post.Summary,
		post.Slug,
		post.AuthorID,
		tags,
		post.FeaturedImage,
		post.IsPublished,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return "", fmt.Errorf("insert post: %w", repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert post: %w", err)
	}
	return post.ID, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, selectPost+` WHERE id = ?`, id)
	return scanPost(row)
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, selectPost+` WHERE slug = ?`, slug)
	return scanPost(row)
}

// List orders by creation time descending; rowid breaks ties in insertion order.
func (r *PostRepository) List(ctx context.Context, filter repository.PostFilter, skip, limit int) ([]domain.Post, int64, error) {
	where, args := buildPostFilter(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := selectPost + where + ` ORDER BY created_at DESC, rowid ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch repository.PostPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	addSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Content != nil {
		addSet("content", *patch.Content)
	}
	if patch.Summary != nil {
		addSet("summary", *patch.Summary)
	}
	if patch.Slug != nil {
		addSet("slug", *patch.Slug)
	}
	if patch.Tags != nil {
		tags, err := encodeTags(*patch.Tags)
		if err != nil {
			return err
		}
		addSet("tags", tags)
	}
	if patch.FeaturedImage != nil {
		addSet("featured_image", *patch.FeaturedImage)
	}
	if patch.IsPublished != nil {
		addSet("is_published", *patch.IsPublished)
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("update post: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *PostRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM posts WHERE slug = ?`
	args := []any{slug}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

const selectPost = `
SELECT id, title, content, summary, slug, author_id, tags, featured_image, is_published, created_at, updated_at
FROM posts`

func buildPostFilter(filter repository.PostFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.PublishedOnly {
		conditions = append(conditions, "is_published = 1")
	}
	if filter.Tag != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM json_each(posts.tags) WHERE json_each.value = ?)")
		args = append(args, filter.Tag)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(instr(lower(title), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0 OR instr(lower(summary), lower(?)) > 0)")
		args = append(args, filter.Search, filter.Search, filter.Search)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanPost(row interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var post domain.Post
	var tags string
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Summary,
		&post.Slug,
		&post.AuthorID,
		&tags,
		&post.FeaturedImage,
		&post.IsPublished,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &post.Tags); err != nil {
		return nil, fmt.Errorf("decode post tags: %w", err)
	}
	return &post, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode post tags: %w", err)
	}
	return string(data), nil
}
