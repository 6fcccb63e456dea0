package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
)

// ChatRepository handles database operations for chat messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a new chat message. The insert trigger announces it on row_changes.
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (sender_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.db.QueryRow(ctx, query, message.SenderID, message.Content).Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("error creating chat message: %w", err)
	}
	return nil
}

// List returns the whole conversation, oldest first, with sender names
func (r *ChatRepository) List(ctx context.Context) ([]*models.ChatMessage, error) {
	sql, args, err := psql.Select(
		"cm.id", "cm.sender_id", "cm.content", "cm.created_at",
		"p.full_name", "p.avatar_url",
	).
		From("chat_messages cm").
		LeftJoin("profiles p ON cm.sender_id = p.id").
		OrderBy("cm.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		var fullName, avatarURL *string

		if err := rows.Scan(&message.ID, &message.SenderID, &message.Content, &message.CreatedAt, &fullName, &avatarURL); err != nil {
			return nil, fmt.Errorf("error scanning chat message row: %w", err)
		}

		if fullName != nil {
			message.Sender = &models.Profile{ID: message.SenderID, FullName: *fullName, AvatarURL: avatarURL}
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}
	return messages, nil
}

// CountSince counts messages posted after since
func (r *ChatRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("chat_messages").Where(squirrel.Gt{"created_at": since}))
}
