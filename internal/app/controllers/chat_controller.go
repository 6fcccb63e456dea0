package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const chatPath = "/chat"

// ChatController handles chat message operations
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// Index renders the full conversation, oldest first
func (c *ChatController) Index(ctx *gin.Context) {
	messages, err := c.chatService.ListMessages(ctx.Request.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load chat messages")
	}

	renderPage(ctx, http.StatusOK, pageChat, "Family Chat", chatPath, gin.H{
		"Messages": messages,
	})
}

// Send posts a message. The chat script asks for JSON; a plain form post is redirected back.
func (c *ChatController) Send(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	wantsJSON := ctx.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON

	var form dto.ChatMessageForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid chat message")
		message := middleware.ValidationMessage(err)
		c.sendFailed(ctx, wantsJSON, apperrors.NewValidationError(message), message)
		return
	}

	message, err := c.chatService.SendMessage(ctx.Request.Context(), userID, form.Content)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to send chat message")
		c.sendFailed(ctx, wantsJSON, err, middleware.PageErrorMessage(err, "Error sending message"))
		return
	}

	if wantsJSON {
		ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewChatMessageResponse(message)))
		return
	}
	redirect(ctx, chatPath)
}

func (c *ChatController) sendFailed(ctx *gin.Context, wantsJSON bool, err error, message string) {
	if wantsJSON {
		middleware.HandleAPIError(ctx, err)
		return
	}
	notify.Error(ctx, message)
	redirect(ctx, chatPath)
}

// ListJSON returns every message for the chat script to redraw
func (c *ChatController) ListJSON(ctx *gin.Context) {
	messages, err := c.chatService.ListMessages(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load chat messages")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toChatMessageResponses(messages)))
}

func toChatMessageResponses(messages []*models.ChatMessage) []dto.ChatMessageResponse {
	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.NewChatMessageResponse(m))
	}
	return out
}
