package ws

import (
	"log"
)

// RouterNotifier implements service.Notifier on top of the Router. Dropped
// deliveries are normal (the recipient is offline) and are not reported
// back to the caller.
type RouterNotifier struct {
	router *Router
}

func NewRouterNotifier(router *Router) *RouterNotifier {
	return &RouterNotifier{router: router}
}

func (n *RouterNotifier) NotifyMessage(sender, receiver, body string) {
	n.deliver(EventTypeChatMessage, receiver, ChatPayload{
		Sender:   sender,
		Receiver: receiver,
		Message:  body,
	})
}

func (n *RouterNotifier) NotifyLike(actor, subjectAuthor string) {
	n.deliver(EventTypeLikeNotify, subjectAuthor, NotificationPayload{
		Actor:         actor,
		SubjectAuthor: subjectAuthor,
	})
}

func (n *RouterNotifier) NotifyComment(actor, subjectAuthor string) {
	n.deliver(EventTypeCommentNotify, subjectAuthor, NotificationPayload{
		Actor:         actor,
		SubjectAuthor: subjectAuthor,
	})
}

func (n *RouterNotifier) NotifyFollow(actor, followed string) {
	n.deliver(EventTypeFollowNotify, followed, NotificationPayload{
		Actor:         actor,
		SubjectAuthor: followed,
	})
}

func (n *RouterNotifier) deliver(eventType, receiver string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.router.Deliver(receiver, evt)
}
