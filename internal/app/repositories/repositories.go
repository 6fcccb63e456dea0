package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds statements with PostgreSQL placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ProfileRepository      *ProfileRepository
	ContributionRepository *ContributionRepository
	EventRepository        *EventRepository
	BlogRepository         *BlogRepository
	GalleryRepository      *GalleryRepository
	ChatRepository         *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		ContributionRepository: NewContributionRepository(db),
		EventRepository:        NewEventRepository(db),
		BlogRepository:         NewBlogRepository(db),
		GalleryRepository:      NewGalleryRepository(db),
		ChatRepository:         NewChatRepository(db),
	}
}

// count runs a COUNT(*) query built by q
func count(ctx context.Context, db *pgxpool.Pool, q squirrel.SelectBuilder) (int, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var n int
	if err := db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting rows: %w", err)
	}
	return n, nil
}
