package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one line of the family chat; messages are append-only
type ChatMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SenderID  uuid.UUID `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Sender *Profile `json:"sender,omitempty"`
}
