package dto

// BlogPostForm is posted by the blog page
type BlogPostForm struct {
	Title   string `form:"title" binding:"required,notblank,max=200"`
	Content string `form:"content" binding:"required,notblank"`
}
