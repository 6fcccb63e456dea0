package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus is the publication state of a blog post
type PostStatus string

const PostPublished PostStatus = "published"

// BlogPost is a family news article
type BlogPost struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	AuthorID  uuid.UUID  `json:"authorId" db:"author_id"`
	Status    PostStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	Author *Profile `json:"author,omitempty"`
}
