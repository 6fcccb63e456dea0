package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const blogPath = "/blog"

// BlogController handles family blog posts
type BlogController struct {
	blogService services.BlogService
	logger      zerolog.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService services.BlogService, logger zerolog.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		logger:      logger,
	}
}

// Index renders published posts, newest first
func (c *BlogController) Index(ctx *gin.Context) {
	posts, err := c.blogService.ListPublished(ctx.Request.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load blog posts")
	}

	renderPage(ctx, http.StatusOK, pageBlog, "Family Blog", blogPath, gin.H{
		"Posts": posts,
	})
}

// Create publishes a post
func (c *BlogController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var form dto.BlogPostForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid blog post form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, blogPath)
		return
	}

	post, err := c.blogService.Publish(ctx.Request.Context(), userID, &form)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to publish post")
		notify.Error(ctx, "Error creating post")
		redirect(ctx, blogPath)
		return
	}

	c.logger.Info().Str("postID", post.ID.String()).Msg("Blog post published")
	notify.Success(ctx, "Post published successfully!")
	redirect(ctx, blogPath)
}
