package domain

import (
	"time"
)

// Conversation is the single message thread between an unordered pair of
// users. UserA < UserB always holds; the repository canonicalizes the pair
// before any lookup or insert.
type Conversation struct {
	ID        int64     `json:"id"`
	UserA     int64     `json:"user_a"`
	UserB     int64     `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationPeer is one entry in a user's conversation list: the other
// participant plus the conversation that links them.
type ConversationPeer struct {
	ConversationID int64   `json:"conversation_id"`
	PeerID         int64   `json:"peer_id"`
	PeerUsername   string  `json:"peer_username"`
	PeerAvatarURL  *string `json:"peer_avatar_url,omitempty"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	// Joined fields
	SenderUsername string `json:"sender_username,omitempty"`
}
