package ws

import (
	"encoding/json"
	"log"
)

// Router validates inbound client events and forwards the recipient-addressed
// ones through the registry. It holds no state of its own: presence lives in
// the registry, everything else is per-event.
type Router struct {
	registry *Registry
}

func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

func (rt *Router) Registry() *Registry {
	return rt.registry
}

// Deliver marshals the event and enqueues it on the connection bound to
// identity. It reports whether the event was accepted: false means the
// identity has no live connection (or its buffer is full) and the event is
// gone. At-most-once, no retry, no queueing.
func (rt *Router) Deliver(identity string, evt *Event) bool {
	h, ok := rt.registry.Resolve(identity)
	if !ok {
		return false
	}
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws router: marshal error: %v", err)
		return false
	}
	return h.Enqueue(data)
}

// Route handles one inbound event from client c. Malformed payloads are
// dropped without touching other connections; a recipient who is offline
// silently misses the event and the sender is never told.
func (rt *Router) Route(c *Client, evt *Event) {
	switch evt.Type {
	case EventTypeIdentityBind:
		var p IdentityBindPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil || p.Identity == "" {
			return
		}
		c.setIdentity(p.Identity)
		rt.registry.Bind(p.Identity, c)
		log.Printf("ws: connection %s bound to %q", c.id, p.Identity)

	case EventTypeTypingStart, EventTypeTypingStop:
		var p TypingPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil || p.Receiver == "" {
			return
		}
		sender := c.Identity()
		if sender == "" {
			return
		}
		p.Sender = sender
		rt.forward(evt.Type, p.Receiver, p)

	case EventTypeChatMessage:
		var p ChatPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil || p.Receiver == "" {
			return
		}
		sender := c.Identity()
		if sender == "" {
			return
		}
		p.Sender = sender
		rt.forward(evt.Type, p.Receiver, p)

	case EventTypeLikeNotify, EventTypeCommentNotify, EventTypeFollowNotify:
		var p NotificationPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil || p.SubjectAuthor == "" {
			return
		}
		actor := c.Identity()
		if actor == "" {
			return
		}
		p.Actor = actor
		rt.forward(evt.Type, p.SubjectAuthor, p)

	case EventTypeMention:
		var p MentionPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil || p.MentionedUsername == "" {
			return
		}
		author := c.Identity()
		if author == "" {
			return
		}
		p.Author = author
		rt.forward(evt.Type, p.MentionedUsername, p)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+evt.Type)
	}
}

func (rt *Router) forward(eventType, receiver string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("ws router: marshal error: %v", err)
		return
	}
	rt.Deliver(receiver, evt)
}
