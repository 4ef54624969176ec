package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rplocha4/social-media-backend/internal/service"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

type followInput struct {
	FollowerID int64 `json:"follower_id"`
	FollowedID int64 `json:"followed_id"`
}

func (h *FollowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input followInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.FollowerID == 0 || input.FollowedID == 0 {
		writeError(w, http.StatusBadRequest, "MISSING_USER", "follower_id and followed_id are required")
		return
	}

	if err := h.followService.Follow(r.Context(), input.FollowerID, input.FollowedID); err != nil {
		switch {
		case errors.Is(err, service.ErrCannotFollowSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_FOLLOW_SELF", "Cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.Printf("ERROR follow: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FollowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var input followInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.FollowerID == 0 || input.FollowedID == 0 {
		writeError(w, http.StatusBadRequest, "MISSING_USER", "follower_id and followed_id are required")
		return
	}

	if err := h.followService.Unfollow(r.Context(), input.FollowerID, input.FollowedID); err != nil {
		log.Printf("ERROR unfollow: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FollowHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	edges, err := h.followService.ListFollowing(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list following: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, edges)
}
