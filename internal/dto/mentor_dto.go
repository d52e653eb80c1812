package dto

import (
	"time"
)

type OpenSessionRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type OpenSessionResponse struct {
	Id       string          `json:"id"`
	Slug     string          `json:"slug"`
	Greeting ChatMessageDTO  `json:"greeting"`
}

type ChatMessageDTO struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Error     bool      `json:"error"`
	CreatedAt time.Time `json:"created_at"`
}

type SendQuestionRequest struct {
	Text string `json:"text" validate:"required"`
}

type SendQuestionResponse struct {
	SessionId string         `json:"session_id"`
	Sent      ChatMessageDTO `json:"sent"`
	Reply     ChatMessageDTO `json:"reply"`
	Attempts  int            `json:"attempts"`
}

type SessionHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Slug      string           `json:"slug"`
	Awaiting  bool             `json:"awaiting"`
	Messages  []ChatMessageDTO `json:"messages"`
}
