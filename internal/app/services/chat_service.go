package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// ChatService defines the interface for chat operations
type ChatService interface {
	ListMessages(ctx context.Context) ([]*models.ChatMessage, error)
	SendMessage(ctx context.Context, senderID uuid.UUID, content string) (*models.ChatMessage, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo repositories.IChatRepository
	logger   zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo repositories.IChatRepository, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{chatRepo: chatRepo, logger: logger}
}

// ListMessages returns every message oldest first with its sender
func (s *chatServiceImpl) ListMessages(ctx context.Context) ([]*models.ChatMessage, error) {
	return s.chatRepo.List(ctx)
}

// SendMessage appends a message. Subscribers learn about it from the row-change notification.
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID uuid.UUID, content string) (message *models.ChatMessage, err error) {
	defer func() { metrics.RecordForm("chat_message", err) }()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message cannot be empty")
	}

	message = &models.ChatMessage{SenderID: senderID, Content: content}
	if err := s.chatRepo.Create(ctx, message); err != nil {
		s.logger.Error().Err(err).Str("senderID", senderID.String()).Msg("Failed to save chat message")
		return nil, err
	}
	return message, nil
}
