package ws

import (
	"encoding/json"
	"time"
)

// Event types - Server → Client
const (
	EventTypeConnectionID = "connection.id"
	EventTypeError        = "error"
	EventTypePong         = "pong"
)

// Event types - Client → Server (recipient-addressed ones are forwarded to
// the receiver's connection verbatim, with the sender identity attached)
const (
	EventTypeIdentityBind  = "identity.bind"
	EventTypeTypingStart   = "typing.start"
	EventTypeTypingStop    = "typing.stop"
	EventTypeChatMessage   = "chat.message"
	EventTypeLikeNotify    = "notify.like"
	EventTypeCommentNotify = "notify.comment"
	EventTypeFollowNotify  = "notify.follow"
	EventTypeMention       = "notify.mention"
	EventTypePing          = "ping"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Payloads ---

type ConnectionIDPayload struct {
	ID string `json:"id"`
}

type IdentityBindPayload struct {
	Identity string `json:"identity"`
}

type ChatPayload struct {
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
}

type TypingPayload struct {
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver"`
}

// NotificationPayload covers like, comment and follow notifications: who
// acted, and whose content (or account) it concerns.
type NotificationPayload struct {
	Actor         string `json:"actor"`
	SubjectAuthor string `json:"subjectAuthor"`
}

type MentionPayload struct {
	Author            string `json:"author"`
	MentionedUsername string `json:"mentionedUsername"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
