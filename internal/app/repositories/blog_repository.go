package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
)

// BlogRepository handles database operations for blog posts
type BlogRepository struct {
	db *pgxpool.Pool
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create inserts a post and fills its id and timestamp
func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	sql, args, err := psql.Insert("blog_posts").
		Columns("title", "content", "author_id", "status").
		Values(post.Title, post.Content, post.AuthorID, post.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt); err != nil {
		return fmt.Errorf("error creating blog post: %w", err)
	}
	return nil
}

// ListPublished returns published posts, newest first, with their author
func (r *BlogRepository) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	sql, args, err := psql.Select(
		"b.id", "b.title", "b.content", "b.author_id", "b.status", "b.created_at",
		"p.full_name", "p.avatar_url",
	).
		From("blog_posts b").
		LeftJoin("profiles p ON p.id = b.author_id").
		Where(squirrel.Eq{"b.status": models.PostPublished}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []*models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		var authorName, avatarURL *string
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.Status, &post.CreatedAt,
			&authorName, &avatarURL); err != nil {
			return nil, fmt.Errorf("error scanning blog post row: %w", err)
		}

		if authorName != nil {
			post.Author = &models.Profile{ID: post.AuthorID, FullName: *authorName, AvatarURL: avatarURL}
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog post rows: %w", err)
	}
	return posts, nil
}

// Count returns the number of posts
func (r *BlogRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("blog_posts"))
}
