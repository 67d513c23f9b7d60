package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"gemchat-backend/internal/models"
	"gemchat-backend/internal/services"
)

// ChatHandler serves all four verbs of /api/chat.
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Fetch returns one conversation with its messages when a conversationId is
// supplied, otherwise the conversation list. An unknown or malformed id is
// answered with a null conversation, not an error.
func (h *ChatHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("conversationId")

	if rawID == "" {
		conversations, err := h.chat.ListConversations(r.Context())
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, models.FetchAllResponse{Conversations: conversations})
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		writeJSON(w, http.StatusOK, models.FetchConversationResponse{
			Conversation: nil,
			Messages:     []models.Message{},
		})
		return
	}

	resp, err := h.chat.FetchConversation(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Submit persists the user message, asks Gemini for a reply, persists it and
// returns both. Without a conversationId a new conversation is created,
// titled with the start of the message.
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	var conversationID *uuid.UUID
	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
			return
		}
		conversationID = &id
	}

	resp, err := h.chat.Submit(r.Context(), req.Message, conversationID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Rename updates a conversation title. A never-created id still reports
// success.
func (h *ChatHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req models.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	id, err := uuid.Parse(req.ConversationID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	if err := h.chat.Rename(r.Context(), id, req.Title); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Remove deletes a conversation and, through the store cascade, its
// messages. A never-created id still reports success.
func (h *ChatHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("conversationId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	if err := h.chat.Remove(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
