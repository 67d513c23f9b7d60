package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gemchat-backend/internal/models"
	"gemchat-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleServiceError maps typed service errors to HTTP responses. Everything
// the client is not meant to distinguish collapses to a generic 500; the
// cause stays in the server log.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("CONVERSATION_NOT_FOUND", err.Error(), r))
	case *services.TimeoutError:
		log.Printf("request %s: completion timeout: %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Failed to get AI response", r))
	case *services.UpstreamError:
		log.Printf("request %s: completion error: %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Failed to get AI response", r))
	default:
		log.Printf("request %s: internal error: %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
