package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"gemchat-backend/internal/models"
)

// titleLimit caps how much of the first message becomes the conversation
// title.
const titleLimit = 50

type conversationStore interface {
	List(ctx context.Context) ([]models.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	Create(ctx context.Context, title string) (*models.Conversation, error)
	Rename(ctx context.Context, id uuid.UUID, title string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type messageStore interface {
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	Create(ctx context.Context, conversationID uuid.UUID, role, content string) (*models.Message, error)
}

// completer is the outbound edge to the generative-language API.
type completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	conversations conversationStore
	messages      messageStore
	completer     completer
}

func NewChatService(conversations conversationStore, messages messageStore, completer completer) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		completer:     completer,
	}
}

// FetchConversation loads a single conversation with its thread. An unknown
// id yields a nil conversation and an empty thread, not an error.
func (s *ChatService) FetchConversation(ctx context.Context, id uuid.UUID) (*models.FetchConversationResponse, error) {
	conversation, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	messages := []models.Message{}
	if conversation != nil {
		messages, err = s.messages.ListByConversation(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return &models.FetchConversationResponse{
		Conversation: conversation,
		Messages:     messages,
	}, nil
}

func (s *ChatService) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return s.conversations.List(ctx)
}

// Submit runs one chat turn: resolve or create the conversation, persist the
// user message, ask Gemini, persist the reply. The prompt is the raw message
// alone; no history is sent, each turn is context-free for the model. If the
// completion fails the already-persisted user message stays behind with no
// assistant reply.
func (s *ChatService) Submit(ctx context.Context, message string, conversationID *uuid.UUID) (*models.SubmitResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Message: "message must not be empty"}
	}

	var conversation *models.Conversation
	var err error

	if conversationID != nil {
		conversation, err = s.conversations.GetByID(ctx, *conversationID)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, &NotFoundError{Message: "conversation not found"}
		}
	} else {
		conversation, err = s.conversations.Create(ctx, truncateTitle(message))
		if err != nil {
			return nil, err
		}
	}

	userMsg, err := s.messages.Create(ctx, conversation.ID, models.RoleUser, message)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Generate(ctx, message)
	if err != nil {
		// The user message is retained; the turn simply has no reply.
		log.Printf("completion failed for conversation %s: %v", conversation.ID, err)
		return nil, err
	}

	assistantMsg, err := s.messages.Create(ctx, conversation.ID, models.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	return &models.SubmitResponse{
		ConversationID: conversation.ID,
		Response:       reply,
		Messages:       []models.Message{*userMsg, *assistantMsg},
	}, nil
}

// Rename reports success even when the id does not exist.
func (s *ChatService) Rename(ctx context.Context, id uuid.UUID, title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Message: "title must not be empty"}
	}
	return s.conversations.Rename(ctx, id, title)
}

// Remove reports success even when the id does not exist. Message cleanup
// rides on the store's cascade.
func (s *ChatService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.conversations.Delete(ctx, id)
}

func truncateTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleLimit {
		return message
	}
	return string(runes[:titleLimit])
}

// IsTimeout reports whether err is the completion deadline being hit, for
// callers that log the two upstream failure modes separately.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
