package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. The store enforces the same set with a CHECK constraint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Conversation struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`

	// MessageCount is filled by the list query for the sidebar; it is not a
	// stored column.
	MessageCount int `json:"message_count,omitempty"`
}

type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// SubmitRequest is the POST /api/chat payload. ConversationID is empty when
// the client is starting a new conversation.
type SubmitRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// SubmitResponse carries the generated reply plus the two persisted messages,
// so the client can render authoritative ids and timestamps instead of
// minting its own.
type SubmitResponse struct {
	ConversationID uuid.UUID `json:"conversationId"`
	Response       string    `json:"response"`
	Messages       []Message `json:"messages"`
}

type RenameRequest struct {
	ConversationID string `json:"conversationId"`
	Title          string `json:"title"`
}

// FetchConversationResponse is returned for GET with a conversationId.
// Conversation is null when the id is unknown; that is not an error.
type FetchConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []Message     `json:"messages"`
}

// FetchAllResponse is returned for GET without a conversationId.
type FetchAllResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
