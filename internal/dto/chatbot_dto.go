package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatSessionResponse struct {
	Id      uuid.UUID `json:"id"`
	Welcome string    `json:"welcome"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId uuid.UUID       `json:"chat_session_id"`
	Sent          *ChatMessageDTO `json:"sent"`
	Reply         *ChatMessageDTO `json:"reply"`
	// Source of the reply: "remote", "local", or "fallback".
	Source string `json:"source"`
}

type ResetChatSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}
