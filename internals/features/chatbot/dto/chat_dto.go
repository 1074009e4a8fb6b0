package dto

import "time"

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatRequest struct {
	Message        string `json:"message" validate:"required,max=2000"`
	ConversationID string `json:"conversation_id,omitempty" validate:"omitempty,uuid"`
}

type ChatResponse struct {
	Message        string    `json:"message"`
	ConversationID string    `json:"conversation_id"`
	Timestamp      time.Time `json:"timestamp"`
}

type ConversationHistory struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []ChatMessage `json:"messages"`
}
