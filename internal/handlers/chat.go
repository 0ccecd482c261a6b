package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sylesh7/medinnovate/internal/logger"
)

// Chatter defines the interface that the assistant service must implement
// for free-form chat.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// ChatRequest represents the JSON body for a chat message
// swagger:model ChatRequest
type ChatRequest struct {
	// Free-form message to the assistant
	// required: true
	// default: I have a headache, what should I do?
	Message string `json:"message"`
}

// ChatResponse represents the assistant's reply
// swagger:model ChatResponse
type ChatResponse struct {
	// Assistant reply text
	Reply string `json:"reply"`
}

// ChatErrorResponse represents an error response for chat
// swagger:model ChatErrorResponse
type ChatErrorResponse struct {
	// Error message
	// default: message is required
	Error string `json:"error"`
}

// NewChatHandler returns an HTTP handler for the assistant chat.
// @Summary Chat with the health assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Param chatRequest body handlers.ChatRequest true "Chat request"
// @Success 200 {object} handlers.ChatResponse "Assistant reply"
// @Failure 400 {object} handlers.ChatErrorResponse "Missing message"
// @Security BearerAuth
// @Router /chat [post]
func NewChatHandler(svc Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ChatErrorResponse{
				Error: "message is required",
			})
			return
		}

		reply, err := svc.Chat(r.Context(), req.Message)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ChatErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ChatResponse{
			Reply: reply,
		})
	}
}
