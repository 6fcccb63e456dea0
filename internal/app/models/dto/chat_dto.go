package dto

import "github.com/familyhub/portal/internal/app/models"

// ChatMessageForm is posted by the chat page
type ChatMessageForm struct {
	Content string `form:"content" json:"content" binding:"required,notblank,max=2000"`
}

// ChatMessageResponse is one message as the chat script receives it
type ChatMessageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}

// NewChatMessageResponse flattens a message for JSON
func NewChatMessageResponse(m *models.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:        m.ID.String(),
		SenderID:  m.SenderID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.FullName
	}
	return resp
}
