package handlers

import (
	"log"
	"net/http"

	"github.com/rplocha4/social-media-backend/internal/service"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Friends handles GET /api/v1/posts/friends/{userID}: the viewer's own
// posts plus everyone they follow, newest first.
func (h *FeedHandler) Friends(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	posts, err := h.feedService.ComputeFeed(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR compute feed: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Profile handles GET /api/v1/posts/{username}: one author's posts. An
// unknown username gets an empty list.
func (h *FeedHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "Username is required")
		return
	}

	posts, err := h.feedService.ComputeProfileFeed(r.Context(), username, viewerID(r))
	if err != nil {
		log.Printf("ERROR compute profile feed: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}
