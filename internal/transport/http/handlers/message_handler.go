package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rplocha4/social-media-backend/internal/service"
)

type MessageHandler struct {
	convService *service.ConversationService
}

func NewMessageHandler(convService *service.ConversationService) *MessageHandler {
	return &MessageHandler{convService: convService}
}

// Send handles POST /api/v1/messages. The conversation for the pair is
// found or created as part of the same call.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserA   int64  `json:"user_a"`
		UserB   int64  `json:"user_b"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.UserA == 0 || input.UserB == 0 {
		writeError(w, http.StatusBadRequest, "MISSING_USER", "user_a and user_b are required")
		return
	}
	if input.Message == "" {
		writeError(w, http.StatusBadRequest, "MISSING_MESSAGE", "Message body is required")
		return
	}

	msg, err := h.convService.SendMessage(r.Context(), input.UserA, input.UserB, input.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotMessageSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_MESSAGE_SELF", "Cannot start a conversation with yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.Printf("ERROR send message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// ListBetween handles GET /api/v1/messages/{userA}/{userB}. A pair with no
// conversation yet gets an empty list.
func (h *MessageHandler) ListBetween(w http.ResponseWriter, r *http.Request) {
	userA, err := pathID(r, "userA")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}
	userB, err := pathID(r, "userB")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	messages, err := h.convService.ListMessagesBetween(r.Context(), userA, userB)
	if err != nil {
		log.Printf("ERROR list messages: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// ListConversations handles GET /api/v1/conversations/{userID}.
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	peers, err := h.convService.ListPeers(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list conversations: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, peers)
}
