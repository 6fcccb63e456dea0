package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// BlogService handles blog posts
type BlogService interface {
	ListPublished(ctx context.Context) ([]*models.BlogPost, error)
	Publish(ctx context.Context, userID uuid.UUID, form *dto.BlogPostForm) (*models.BlogPost, error)
}

type blogServiceImpl struct {
	blogRepo repositories.IBlogRepository
	logger   zerolog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo repositories.IBlogRepository, logger zerolog.Logger) BlogService {
	return &blogServiceImpl{blogRepo: blogRepo, logger: logger}
}

// ListPublished returns published posts newest first with their authors
func (s *blogServiceImpl) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	return s.blogRepo.ListPublished(ctx)
}

// Publish stores a post as published
func (s *blogServiceImpl) Publish(ctx context.Context, userID uuid.UUID, form *dto.BlogPostForm) (post *models.BlogPost, err error) {
	defer func() { metrics.RecordForm("blog_post", err) }()

	post = &models.BlogPost{
		Title:    strings.TrimSpace(form.Title),
		Content:  form.Content,
		AuthorID: userID,
		Status:   models.PostPublished,
	}
	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
